package params

import (
	"strings"
)

// Separator joins a group name and a nested key in flat names such as
// "group_year".
const Separator = "_"

// resolve walks names left to right, descending into nested containers. A
// flat name that is not declared but starts with an existing group is split
// on the first separator and retried. The second result is the flat path of
// the parameter found.
func (c *Container) resolve(names []string) (*Parameter, string, error) {
	if len(names) == 0 {
		return nil, "", newError(KindLookup, "", "One or more names must be supplied.")
	}
	head := names[0]
	p, ok := c.params.ValueByKeyTry(head)
	if !ok {
		if group, sub, found := strings.Cut(head, Separator); found && c.params.IndexByKey(group) >= 0 {
			split := make([]string, 0, len(names)+1)
			split = append(split, group, sub)
			split = append(split, names[1:]...)
			return c.resolve(split)
		}
		return nil, "", newError(KindLookup, head, "The parameter '%s' does not exist.", head)
	}
	if len(names) == 1 {
		return p, head, nil
	}
	if !p.isContainer() {
		return nil, "", newError(KindLookup, head, "Extra argument(s) found: %s", strings.Join(names[1:], ", "))
	}
	nested := p.nested()
	if nested == nil {
		return nil, "", newError(KindLookup, head, "The parameter '%s' does not hold a container.", head)
	}
	found, path, err := nested.resolve(names[1:])
	if err != nil {
		return nil, "", err
	}
	return found, head + Separator + path, nil
}

// groupPrefix returns the first prefix of name, split at a separator, that
// names an existing nested container parameter.
func (c *Container) groupPrefix(name string) (string, bool) {
	for i := 0; i < len(name); i++ {
		if !strings.HasPrefix(name[i:], Separator) {
			continue
		}
		prefix := name[:i]
		if p, ok := c.params.ValueByKeyTry(prefix); ok && p.isContainer() {
			return prefix, true
		}
	}
	return "", false
}

// flatChild returns an existing key that would be addressed through name
// once name becomes a nested container.
func (c *Container) flatChild(name string) (string, bool) {
	prefix := name + Separator
	for _, key := range c.params.Keys() {
		if strings.HasPrefix(key, prefix) {
			return key, true
		}
	}
	return "", false
}
