package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	if e.kind == "file" {
		return fmt.Sprintf("file not found: %s (run `minibook --file %s new` to create it)", e.id, e.id)
	}
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type missingFlagError struct {
	flag string
	env  string
}

func (e missingFlagError) Error() string {
	if e.env != "" {
		return fmt.Sprintf("missing --%s (or set %s)", e.flag, e.env)
	}
	return fmt.Sprintf("missing --%s", e.flag)
}

func errMissingFlag(flag, env string) error {
	return missingFlagError{flag: flag, env: env}
}
