package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"alice@example.com", true},
		{"a.b+c@sub.domain.org", true},
		{"", false},
		{"alice", false},
		{"alice@example", false},
		{"alice@@example.com", false},
		{"al ice@example.com", false},
		{"@example.com", false},
		{"alice@.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.in))
		})
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want PasswordChecks
	}{
		{
			name: "all rules pass",
			in:   "Abc12345!",
			want: PasswordChecks{Length: true, Uppercase: true, Lowercase: true, Number: true, Special: true},
		},
		{
			name: "no uppercase no special",
			in:   "abc12345",
			want: PasswordChecks{Length: true, Lowercase: true, Number: true},
		},
		{
			name: "empty",
			in:   "",
			want: PasswordChecks{},
		},
		{
			name: "short but otherwise strong",
			in:   "Ab1!",
			want: PasswordChecks{Uppercase: true, Lowercase: true, Number: true, Special: true},
		},
		{
			name: "underscore is not a special char",
			in:   "Abcdefg1_",
			want: PasswordChecks{Length: true, Uppercase: true, Lowercase: true, Number: true},
		},
		{
			name: "quote and braces count as special",
			in:   `"{}`,
			want: PasswordChecks{Special: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.in))
		})
	}
}

func TestAllPassed_IffEveryRule(t *testing.T) {
	full := PasswordChecks{Length: true, Uppercase: true, Lowercase: true, Number: true, Special: true}
	require.True(t, full.AllPassed())

	for _, unset := range []func(*PasswordChecks){
		func(c *PasswordChecks) { c.Length = false },
		func(c *PasswordChecks) { c.Uppercase = false },
		func(c *PasswordChecks) { c.Lowercase = false },
		func(c *PasswordChecks) { c.Number = false },
		func(c *PasswordChecks) { c.Special = false },
	} {
		c := full
		unset(&c)
		assert.False(t, c.AllPassed(), "%+v", c)
	}
}

func TestCheckPassword_Idempotent(t *testing.T) {
	for _, pw := range []string{"Abc12345!", "abc", "ÄÖÜ12345", "PASSWORD!!"} {
		assert.Equal(t, CheckPassword(pw), CheckPassword(pw))
	}
}

func TestRules_OrderAndState(t *testing.T) {
	rules := CheckPassword("abc12345").Rules()
	require.Len(t, rules, 5)

	assert.Equal(t, "At least 8 characters", rules[0].Label)
	assert.True(t, rules[0].Passed)
	assert.False(t, rules[1].Passed)
	assert.True(t, rules[2].Passed)
	assert.True(t, rules[3].Passed)
	assert.False(t, rules[4].Passed)
}
