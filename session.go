package params

// Session carries the build settings shared by the objects of one program
// run and remembers the most recently built object.
type Session struct {
	opts    []ObjectOption
	current *Object
}

// NewSession returns a session whose objects are built with opts.
//
//	s := params.NewSession(params.WithArgs(os.Args[1:]...))
//	text, err := s.New("Text", textSchema, nil)
func NewSession(opts ...ObjectOption) *Session {
	return &Session{opts: append([]ObjectOption(nil), opts...)}
}

// New builds an object with the session options followed by opts and makes
// it the current object.
func (s *Session) New(class string, schema SchemaFunc, values map[string]any, opts ...ObjectOption) (*Object, error) {
	all := append(append([]ObjectOption(nil), s.opts...), opts...)
	obj, err := NewObject(class, schema, values, all...)
	if err != nil {
		return nil, err
	}
	s.current = obj
	return obj, nil
}

// Current returns the most recently built object, or nil.
func (s *Session) Current() *Object {
	return s.current
}
