package internal

import "strings"

// ScopeStack is a stack of variable frames. Lookups search innermost to
// outermost; writes go to the innermost frame. The base frame is never
// popped.
type ScopeStack struct {
	frames []map[string]any
}

// NewScopeStack creates a stack whose base frame is a shallow copy of data
func NewScopeStack(data map[string]any) *ScopeStack {
	base := make(map[string]any, len(data))
	for k, v := range data {
		base[k] = v
	}
	return &ScopeStack{frames: []map[string]any{base}}
}

// Get resolves a dot path. The first segment selects the innermost frame
// that binds it; later segments walk into the bound value.
func (s *ScopeStack) Get(path string) (any, bool) {
	if path == StringValueEmpty {
		return nil, false
	}
	segments := strings.Split(path, PathSeparator)
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][segments[0]]; ok {
			return LookupPath(v, segments[1:])
		}
	}
	return nil, false
}

// Has reports whether path resolves
func (s *ScopeStack) Has(path string) bool {
	_, ok := s.Get(path)
	return ok
}

// Set binds name in the innermost frame
func (s *ScopeStack) Set(name string, value any) {
	s.frames[len(s.frames)-1][name] = value
}

// Push adds an empty frame
func (s *ScopeStack) Push() {
	s.frames = append(s.frames, make(map[string]any))
}

// Pop removes the innermost frame; the base frame stays
func (s *ScopeStack) Pop() {
	if len(s.frames) > 1 {
		s.frames[len(s.frames)-1] = nil
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Depth returns the number of frames
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// Flatten merges all frames, inner bindings winning
func (s *ScopeStack) Flatten() map[string]any {
	out := make(map[string]any)
	for _, frame := range s.frames {
		for k, v := range frame {
			out[k] = v
		}
	}
	return out
}
