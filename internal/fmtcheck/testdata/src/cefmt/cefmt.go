package cefmt

import "io"

type Format struct{}

type Deferred struct{}

func Compile(s string) (*Format, error) { return nil, nil }

func MustCompile(s string) *Format { return nil }

func Print(f *Format, args ...any) (string, error) { return "", nil }

func Write(w io.Writer, f *Format, args ...any) (int, error) { return 0, nil }

func Sentinel(f *Format, args ...any) (Deferred, error) { return Deferred{}, nil }
