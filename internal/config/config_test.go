package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttribute_Basic(t *testing.T) {
	attr, err := ParseAttribute("first_arg=args[0]")

	require.NoError(t, err)
	assert.Equal(t, "first_arg", attr.Name)
	assert.Equal(t, "args[0]", attr.Expression)
}

func TestParseAttribute_ExpressionWithEquals(t *testing.T) {
	attr, err := ParseAttribute(`is_ready=event == "ready"`)

	require.NoError(t, err)
	assert.Equal(t, "is_ready", attr.Name)
	assert.Equal(t, `event == "ready"`, attr.Expression)
}

func TestParseAttribute_InvalidFormat(t *testing.T) {
	_, err := ParseAttribute("invalid_no_equals")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid attribute format")
	assert.Contains(t, err.Error(), "NAME=EXPR")
}

func TestParseAttribute_EmptyName(t *testing.T) {
	_, err := ParseAttribute("=value")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "name cannot be empty")
}

func TestParseAttribute_EmptyExpression(t *testing.T) {
	_, err := ParseAttribute("name=")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expression cannot be empty")
}

func TestParseAttributes_StopsAtFirstError(t *testing.T) {
	_, err := ParseAttributes([]string{"a=1", "broken", "b=2"})
	require.Error(t, err)

	attrs, err := ParseAttributes([]string{"a=1", "b=2"})
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "b", attrs[1].Name)
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		in      string
		want    Output
		wantErr bool
	}{
		{in: "", want: OutputJSON},
		{in: "json", want: OutputJSON},
		{in: " OTLP ", want: OutputOTLP},
		{in: "both", want: OutputBoth},
		{in: "none", want: OutputNone},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutput(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutput_Wants(t *testing.T) {
	assert.True(t, OutputBoth.WantsJSON())
	assert.True(t, OutputBoth.WantsOTLP())
	assert.True(t, OutputJSON.WantsJSON())
	assert.False(t, OutputJSON.WantsOTLP())
	assert.False(t, OutputNone.WantsJSON())
	assert.False(t, OutputNone.WantsOTLP())
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{ScriptPath: "session.yaml", Output: OutputJSON}
	require.NoError(t, valid.Validate())

	noScript := valid
	noScript.ScriptPath = " "
	assert.ErrorContains(t, noScript.Validate(), "no script specified")

	badOutput := valid
	badOutput.Output = "xml"
	assert.ErrorContains(t, badOutput.Validate(), "unsupported output")

	negative := valid
	negative.MaxBreadcrumbs = -1
	assert.ErrorContains(t, negative.Validate(), "must not be negative")

	dup := valid
	dup.CustomAttributes = []CustomAttribute{{Name: "a", Expression: "1"}, {Name: "a", Expression: "2"}}
	assert.ErrorContains(t, dup.Validate(), "duplicate attribute")
}
