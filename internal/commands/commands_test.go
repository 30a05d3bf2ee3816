package commands

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
)

func newTestRegistry(ran *string, path *string) *Registry {
	r := NewRegistry("play")
	play := flag.NewFlagSet("play", flag.ContinueOnError)
	play.StringVar(path, "config", "default.yaml", "config file")
	r.Register("play", "open the puzzle window", play, func() error {
		*ran = "play"
		return nil
	})
	cfg := flag.NewFlagSet("config", flag.ContinueOnError)
	r.Register("config", "write the default config", cfg, func() error {
		*ran = "config"
		return errors.New("boom")
	})
	return r
}

func TestExecute(t *testing.T) {
	cases := []struct {
		args    []string
		ran     string
		path    string
		wantErr string
	}{
		{nil, "play", "default.yaml", ""},
		{[]string{"-config", "x.yaml"}, "play", "x.yaml", ""},
		{[]string{"play", "-config", "y.yaml"}, "play", "y.yaml", ""},
		{[]string{"config"}, "config", "default.yaml", "boom"},
		{[]string{"scramble"}, "", "default.yaml", "unknown command: scramble"},
	}
	for _, tc := range cases {
		var ran string
		var path string
		r := newTestRegistry(&ran, &path)
		err := r.Execute(tc.args)
		if tc.wantErr == "" && err != nil {
			t.Errorf("%v: err = %v", tc.args, err)
		}
		if tc.wantErr != "" && (err == nil || err.Error() != tc.wantErr) {
			t.Errorf("%v: err = %v, want %q", tc.args, err, tc.wantErr)
		}
		if ran != tc.ran || path != tc.path {
			t.Errorf("%v: ran %q with %q, want %q with %q", tc.args, ran, path, tc.ran, tc.path)
		}
	}
}

func TestPrintUsage(t *testing.T) {
	var ran, path string
	var buf bytes.Buffer
	newTestRegistry(&ran, &path).PrintUsage(&buf)
	out := buf.String()
	if strings.Index(out, "config") > strings.Index(out, "play") {
		t.Errorf("usage not sorted:\n%s", out)
	}
}
