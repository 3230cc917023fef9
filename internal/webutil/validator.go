package webutil

import (
	"log"
	"reflect"
	"strings"

	"go_vocab_quiz/internal/model"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"english":      "English word",
	"vietnamese":   "Vietnamese meaning",
	"wordType":     "Word type",
	"studied":      "Studied flag",
	"memorized":    "Memorized flag",
	"vocabularyId": "Vocabulary ID",
	"username":     "Username",
	"password":     "Password",
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 空白だけの文字列を弾く
	Validator.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	Validator.RegisterValidation("wordtype", func(fl validator.FieldLevel) bool {
		return model.IsValidWordType(fl.Field().String())
	})

	english := en.New()
	uni := ut.New(english, english)
	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation("required", "{0} is required")
	registerTranslation("notblank", "{0} must not be blank")
	registerTranslation("wordtype", "{0} must be one of noun, verb, adjective, adverb, preposition, conjunction, interjection, pronoun, other")
	registerTranslation("uuid", "{0} must be a valid UUID")
	registerParamTranslation("min", "{0} must be at least {1} characters")
	registerParamTranslation("max", "{0} must be at most {1} characters")
}

func displayName(field string) string {
	if name, ok := fieldNameTranslations[field]; ok {
		return name
	}
	return field
}

// registerTranslation はフィールド名だけを埋め込むメッセージを登録します
func registerTranslation(tag, msg string) {
	Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, displayName(fe.Field()))
		return t
	})
}

// registerParamTranslation はタグのパラメータも埋め込むメッセージを登録します
func registerParamTranslation(tag, msg string) {
	Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, displayName(fe.Field()), fe.Param())
		return t
	})
}
