package i18n

import (
	"github.com/reoring/propschema"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "default" or "value").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case propschema.CodeInvalidType:
			return "型が不正です"
		case propschema.CodeRequired:
			if d, ok := data["default"]; ok {
				return "値が保存されていません（既定値 " + d + " を使用）"
			}
			return "値が保存されていません"
		case propschema.CodeUnknownKey:
			return "スキーマに定義されていないキーです"
		case propschema.CodeDuplicateKey:
			return "プロパティ名が重複しています"
		case propschema.CodeInvalidNumber:
			return "数値ではありません"
		case propschema.CodeUnknownProperty:
			return "未知のプロパティです"
		case propschema.CodeParseError:
			return "解析エラー"
		case propschema.CodeTooBig:
			return "データが大きすぎます"
		}
	default: // "en"
		switch code {
		case propschema.CodeInvalidType:
			return "invalid type"
		case propschema.CodeRequired:
			if d, ok := data["default"]; ok {
				return "no stored value (default " + d + " applies)"
			}
			return "no stored value"
		case propschema.CodeUnknownKey:
			return "key not declared by the schema"
		case propschema.CodeDuplicateKey:
			return "duplicate property name"
		case propschema.CodeInvalidNumber:
			return "not a number"
		case propschema.CodeUnknownProperty:
			return "unknown property"
		case propschema.CodeParseError:
			return "parse error"
		case propschema.CodeTooBig:
			return "payload too large"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }

// Describe renders an issue as "path: localized message". Params with string
// values are passed to the Translator.
func Describe(it propschema.Issue) string {
	var data map[string]string
	for k, v := range it.Params {
		if s, ok := v.(string); ok {
			if data == nil {
				data = map[string]string{}
			}
			data[k] = s
		}
	}
	return it.Path + ": " + T(it.Code, data)
}
