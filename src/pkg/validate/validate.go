package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"dailyfocus/local-app/src/pkg/calendar"
	"dailyfocus/local-app/src/pkg/model"
)

var rules = newRules()

// newRules reports fields by their JSON names.
func newRules() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// AppData checks a task-side document: the five keys of the store, every
// task at every depth, every history entry and the settings.
func AppData(raw []byte) Violations {
	doc, vs := decode(raw)
	if vs != nil {
		return vs
	}
	w := &walker{}
	w.object("", doc, []field{
		{name: "todayTasks", kind: KindArray, each: validateTask},
		{name: "mustDoTasks", kind: KindArray, each: validateTask},
		{name: "taskHistory", kind: KindObject},
		{name: "lastDate", kind: KindString},
		{name: "settings", kind: KindObject, each: validateSettings},
	})
	if h, ok := doc["taskHistory"]; ok && kindOf(h) == KindObject {
		w.mapOf("taskHistory", h, func(w *walker, path, key string, v interface{}) {
			if err := rules.Var(key, "datetime="+calendar.DateKeyLayout); err != nil {
				w.add(path, KindObject, "history key %q is not a date", key)
			}
			validateHistoryEntry(w, path, key, v)
		})
	}
	if d, ok := doc["lastDate"].(string); ok && d != "" {
		if err := rules.Var(d, "datetime="+calendar.DateKeyLayout); err != nil {
			w.add("lastDate", KindString, "invalid date %q", d)
		}
	}
	return w.out
}

// LearningData checks a learning-side document the same way.
func LearningData(raw []byte) Violations {
	doc, vs := decode(raw)
	if vs != nil {
		return vs
	}
	w := &walker{}
	w.object("", doc, []field{
		{name: "currentWeekTopics", kind: KindArray, each: validateTopic},
		{name: "learningHistory", kind: KindObject},
		{name: "lastWeekId", kind: KindString},
		{name: "learningSettings", kind: KindObject, each: validateLearningSettings},
		{name: "learningStatistics", kind: KindObject, optional: true, each: validateLearningStatistics},
	})
	if h, ok := doc["learningHistory"]; ok && kindOf(h) == KindObject {
		w.mapOf("learningHistory", h, func(w *walker, path, key string, v interface{}) {
			if _, _, err := calendar.ParseWeekID(key); err != nil {
				w.add(path, KindObject, "history key %q is not a week id", key)
			}
			validateWeekEntry(w, path, key, v)
		})
	}
	if id, ok := doc["lastWeekId"].(string); ok && id != "" {
		if _, _, err := calendar.ParseWeekID(id); err != nil {
			w.add("lastWeekId", KindString, "invalid week id %q", id)
		}
	}
	return w.out
}

// HasAppData reports whether a document carries any task-side key.
func HasAppData(raw []byte) bool {
	return hasAny(raw, "todayTasks", "mustDoTasks", "taskHistory", "lastDate", "settings")
}

// HasLearningData reports whether a document carries any learning-side key.
func HasLearningData(raw []byte) bool {
	return hasAny(raw, "currentWeekTopics", "learningHistory", "lastWeekId", "learningSettings", "learningStatistics")
}

func hasAny(raw []byte, keys ...string) bool {
	doc, vs := decode(raw)
	if vs != nil {
		return false
	}
	for _, k := range keys {
		if _, ok := doc[k]; ok {
			return true
		}
	}
	return false
}

// Settings checks the value ranges of task settings.
func Settings(s model.Settings) Violations {
	return structRules("settings", s)
}

// LearningSettings checks the value ranges of learning settings.
func LearningSettings(s model.LearningSettings) Violations {
	return structRules("learningSettings", s)
}

func structRules(prefix string, v interface{}) Violations {
	err := rules.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Violations{{Path: prefix, Expected: KindObject, Message: err.Error()}}
	}
	out := make(Violations, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Violation{
			Path:     join(prefix, fe.Field()),
			Expected: KindNumber,
			Message:  fmt.Sprintf("failed rule %s=%s (got %v)", fe.Tag(), fe.Param(), fe.Value()),
		})
	}
	return out
}
