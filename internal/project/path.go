package project

import "strings"

// Path is the absolute path of a project within a build.
type Path string

// Root is the path of the root project.
const Root Path = ":"

// AbsoluteName qualifies a name declared in the project.
func (p Path) AbsoluteName(name string) string {
	if p == "" || p == Root {
		return ":" + name
	}
	return string(p) + ":" + name
}

// Child returns the path of a subproject.
func (p Path) Child(name string) Path {
	return Path(p.AbsoluteName(name))
}

// Name returns the last segment of the path. The root has no name.
func (p Path) Name() string {
	s := string(p)
	return s[strings.LastIndex(s, ":")+1:]
}

func (p Path) String() string {
	if p == "" {
		return string(Root)
	}
	return string(p)
}
