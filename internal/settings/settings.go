// Package settings describes the environment variables read by config.Config,
// grouped the way the nested prefixes group them.
package settings

import (
	"reflect"
	"strings"
)

type Section struct {
	Title    string    `yaml:"title"`
	Prefix   string    `yaml:"prefix,omitempty"`
	Settings []Setting `yaml:"settings"`
}

type Setting struct {
	Env         string `yaml:"env"`
	Default     string `yaml:"default,omitempty"`
	Description string `yaml:"description"`
	Secret      bool   `yaml:"secret,omitempty"`
}

// FromConfig walks the env tags of cfg. Top level fields form the "General" section,
// every field carrying a prefix= option becomes a section titled by its description.
func FromConfig(cfg interface{}) []Section {
	t := reflect.TypeOf(cfg)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	general := Section{Title: "General"}
	var nested []Section
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}
		name, options := parseTag(tag)

		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}
		if prefix, ok := options["prefix"]; ok && fieldType.Kind() == reflect.Struct {
			nested = append(nested, collect(fieldType, prefix, field.Tag.Get("description")))
			continue
		}

		general.Settings = append(general.Settings, newSetting(field, name, options))
	}

	return append([]Section{general}, nested...)
}

func collect(t reflect.Type, prefix, title string) Section {
	section := Section{Title: title, Prefix: prefix}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}
		name, options := parseTag(tag)
		section.Settings = append(section.Settings, newSetting(field, prefix+name, options))
	}
	return section
}

func newSetting(field reflect.StructField, env string, options map[string]string) Setting {
	return Setting{
		Env:         env,
		Default:     options["default"],
		Description: field.Tag.Get("description"),
		Secret:      field.Tag.Get("type") == "secret",
	}
}

// parseTag splits `NAME, default=x, prefix=Y` into the name and its options
func parseTag(tag string) (string, map[string]string) {
	parts := strings.Split(tag, ",")
	options := make(map[string]string)
	for _, part := range parts[1:] {
		key, value, _ := strings.Cut(strings.TrimSpace(part), "=")
		options[key] = value
	}
	return strings.TrimSpace(parts[0]), options
}
