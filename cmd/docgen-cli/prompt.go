package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docgen/pkg/manifest"
	"github.com/goliatone/go-docgen/pkg/pipeline"
)

var errAborted = errors.New("aborted")

// promptMissing asks for manifest fields absent from data, and for the
// document id when nothing supplied one. Answers are YAML-scalar parsed so
// "42" and "true" keep their types.
func promptMissing(m *manifest.Manifest, data map[string]any) error {
	if m != nil {
		for _, name := range m.FieldNames() {
			if _, ok := data[name]; ok {
				continue
			}
			field, _ := m.Field(name)
			answer, err := askField(field)
			if err != nil {
				return err
			}
			if answer == nil {
				continue
			}
			data[name] = answer
		}
	}

	if _, ok := data[pipeline.DataIDKey]; ok {
		return nil
	}
	var id string
	err := survey.AskOne(&survey.Input{Message: "Document id"}, &id,
		survey.WithValidator(survey.Required))
	if err != nil {
		return translateSurveyErr(err)
	}
	data[pipeline.DataIDKey] = strings.TrimSpace(id)
	return nil
}

func askField(field manifest.Field) (any, error) {
	prompt := &survey.Input{
		Message: promptMessage(field),
		Default: defaultString(field),
	}
	var opts []survey.AskOpt
	if field.Required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}

	var answer string
	if err := survey.AskOne(prompt, &answer, opts...); err != nil {
		return nil, translateSurveyErr(err)
	}
	if answer == "" {
		return nil, nil
	}
	var value any
	if err := yaml.Unmarshal([]byte(answer), &value); err != nil {
		return answer, nil
	}
	return value, nil
}

func promptMessage(field manifest.Field) string {
	if field.Prompt != "" {
		return field.Prompt
	}
	if field.Title != "" {
		return field.Title
	}
	return field.Name
}

func defaultString(field manifest.Field) string {
	if field.Default == nil {
		return ""
	}
	return fmt.Sprint(field.Default)
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}
