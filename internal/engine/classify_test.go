package engine

import (
	"testing"

	"github.com/proftool/proftool/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestClassify_RuleOrder(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Class
	}{
		{"seccomp", "seccomp", Class{Action: Count, Directive: types.Seccomp}},
		{"seccomp list", "seccomp.drop mount", Class{Action: Count, Directive: types.Seccomp}},
		{"caps", "caps.drop all", Class{Action: Count, Directive: types.Caps}},
		{"caps loose prefix", "caps_extra", Class{Action: Count, Directive: types.Caps}},
		{"noexec", "include disable-exec.inc", Class{Action: Count, Directive: types.NoExec}},
		{"whitelist var", "include whitelist-var-common.inc", Class{Action: Count, Directive: types.WhitelistVar}},
		{"ssh", "include disable-common.inc", Class{Action: Count, Directive: types.SSH}},
		{"net none", "net none", Class{Action: Count, Directive: types.NetNone}},
		{"apparmor", "apparmor", Class{Action: Count, Directive: types.AppArmor}},
		{"private-dev", "private-dev", Class{Action: Count, Directive: types.PrivateDev}},
		{"private-tmp", "private-tmp", Class{Action: Count, Directive: types.PrivateTmp}},
		{"generic include", "include firefox-common.profile", Class{Action: Include, Path: "firefox-common.profile"}},
		{"include trailing blanks", "include   b.profile \t", Class{Action: Include, Path: "b.profile"}},
		{"local override", "include firefox.local", Class{Action: Count, Directive: types.DotLocal, Path: "firefox.local"}},
		{"globals override", "include globals.local", Class{Action: Count, Directive: types.GlobalsDotLocal, Path: "globals.local"}},
		{"empty include", "include ", Class{}},
		{"net other", "net eth0", Class{}},
		{"unknown", "noroot", Class{}},
		{"include without space", "include", Class{}},
	}
	var c Classifier
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.line))
		})
	}
}

func TestClassify_Strict(t *testing.T) {
	c := Classifier{Strict: true}
	assert.Equal(t, Class{}, c.Classify("caps_extra"))
	assert.Equal(t, Class{Action: Count, Directive: types.Caps}, c.Classify("caps"))
	assert.Equal(t, Class{Action: Count, Directive: types.Seccomp}, c.Classify("seccomp !chroot"))
	assert.Equal(t, Class{Action: Count, Directive: types.Seccomp}, c.Classify("seccomp\tfoo"))
	// a near-miss of a named include falls through to generic expansion
	assert.Equal(t, Class{Action: Include, Path: "disable-exec.inc.bak"}, c.Classify("include disable-exec.inc.bak"))
	assert.Equal(t, Class{Action: Count, Directive: types.NoExec}, c.Classify("include disable-exec.inc"))
}

func TestResolveInclude(t *testing.T) {
	assert.Equal(t, types.DotLocal, ResolveInclude("/etc/firejail/firefox.local").Directive)
	assert.Equal(t, types.GlobalsDotLocal, ResolveInclude("/etc/firejail/globals.local").Directive)
	assert.Equal(t, Include, ResolveInclude("firefox-common.profile").Action)
	// any path containing .local is an override
	assert.Equal(t, types.DotLocal, ResolveInclude("x.localized.profile").Directive)
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"seccomp\n", "seccomp", true},
		{"  \tcaps.drop all\r\n", "caps.drop all", true},
		{"# comment", "", false},
		{"   # indented comment", "", false},
		{"", "", false},
		{" \t ", "", false},
	}
	for _, tt := range tests {
		got, ok := cleanLine(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}
