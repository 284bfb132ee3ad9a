package creature

import "fmt"

var (
	Types = []string{
		"cat", "dog", "fox", "bear", "rabbit",
		"owl", "frog", "penguin", "dragon", "axolotl",
	}

	Personalities = []string{
		"happy", "sleepy", "grumpy", "curious", "shy",
		"brave", "silly", "mischievous", "zen", "excited",
	}

	Colors = []string{
		"red", "orange", "yellow", "green", "blue",
		"purple", "pink", "brown", "black", "white",
	}
)

type Params struct {
	Type        string
	Personality string
	Color       string
}

// FieldError 单个查询参数的校验错误
type FieldError struct {
	Parameter   string   `json:"parameter"`
	Message     string   `json:"message"`
	ValidValues []string `json:"valid_values"`
}

// Validate 校验三个查询参数，返回所有不合法项
func Validate(typ, personality, color string) (Params, []FieldError) {
	var errs []FieldError

	if !contains(Types, typ) {
		errs = append(errs, fieldError("type", typ, Types))
	}
	if !contains(Personalities, personality) {
		errs = append(errs, fieldError("personality", personality, Personalities))
	}
	if !contains(Colors, color) {
		errs = append(errs, fieldError("color", color, Colors))
	}

	if len(errs) > 0 {
		return Params{}, errs
	}

	return Params{Type: typ, Personality: personality, Color: color}, nil
}

// GuideFile 引导图文件名由生物类型决定，一类一图
func (p Params) GuideFile() string {
	return p.Type + ".png"
}

func fieldError(name, value string, valid []string) FieldError {
	msg := fmt.Sprintf("%q is not a valid %s", value, name)
	if value == "" {
		msg = fmt.Sprintf("%s is required", name)
	}
	return FieldError{Parameter: name, Message: msg, ValidValues: valid}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
