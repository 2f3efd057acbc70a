package config

import (
	"strconv"
	"time"
)

type strFlag struct {
	v   string
	set bool
}

func (f *strFlag) String() string     { return f.v }
func (f *strFlag) Set(s string) error { f.v, f.set = s, true; return nil }

type boolFlag struct {
	v   bool
	set bool
}

func (f *boolFlag) String() string { return "" }
func (f *boolFlag) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.v, f.set = b, true
	return nil
}

type durFlag struct {
	v   time.Duration
	set bool
}

func (f *durFlag) String() string { return f.v.String() }
func (f *durFlag) Set(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	f.v, f.set = d, true
	return nil
}
