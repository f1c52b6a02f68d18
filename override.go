package params

import (
	"regexp"

	"github.com/goliatone/go-params/pkg/activity"
)

// Override is a parsed Class:key=value or Class:instance:key=value
// argument.
type Override struct {
	Arg      string
	Class    string
	Instance string
	Key      string
	Value    string
}

var overridePattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):(?:([^:=]*):)?([^:=]+)=(.*)$`)

// ParseOverride splits a command-line override. The second result is false
// when arg does not have the override shape.
func ParseOverride(arg string) (Override, bool) {
	m := overridePattern.FindStringSubmatch(arg)
	if m == nil {
		return Override{}, false
	}
	return Override{
		Arg:      arg,
		Class:    m[1],
		Instance: m[2],
		Key:      m[3],
		Value:    m[4],
	}, true
}

// Matches reports whether the override targets obj.
func (o Override) Matches(obj *Object) bool {
	if obj == nil || o.Class != obj.Class() {
		return false
	}
	return o.Instance == "" || o.Instance == obj.Name()
}

// Literal parses the value text. Text that is not a literal is used as a
// plain string so Text:text=hello works without quoting.
func (o Override) Literal() any {
	value, err := ParseLiteral(o.Value)
	if err != nil {
		return o.Value
	}
	return value
}

// ApplyOverrides scans args left to right and applies every override that
// matches obj, so later arguments win.
func ApplyOverrides(obj *Object, args []string) error {
	for _, arg := range args {
		o, ok := ParseOverride(arg)
		if !ok || !o.Matches(obj) {
			continue
		}
		obj.Info("Setting Option from Command Line: %s", arg)
		c := obj.options
		p, path, err := c.resolve([]string{o.Key})
		if err != nil {
			if err := c.fail(err); err != nil {
				return err
			}
			continue
		}
		old := p.Value()
		before := p.Modified()
		if err := c.Set(o.Key, o.Literal()); err != nil {
			return err
		}
		if p.Modified() == before {
			continue
		}
		if err := c.emit(activity.BuildOverrideAppliedEvent, activity.ParamEventInput{
			Path:     path,
			OldValue: old,
			NewValue: p.Value(),
			Source:   arg,
		}); err != nil {
			return err
		}
	}
	return nil
}
