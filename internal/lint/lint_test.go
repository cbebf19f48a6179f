package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_ValidFile(t *testing.T) {
	problems := Check([]byte(`Feature: Login
  Scenario: User logs in
    Given a user
    When they log in
    Then they see the dashboard
`))
	assert.Empty(t, problems)
	assert.False(t, HasErrors(problems))
}

func TestCheck_GrammarError(t *testing.T) {
	problems := Check([]byte(`Feature: Login
  Scenario: User logs in
    Given a user
  Feature: Again
`))
	require.NotEmpty(t, problems)
	assert.True(t, HasErrors(problems))
	assert.Equal(t, SeverityError, problems[0].Severity)
	assert.Equal(t, 4, problems[0].Line)
}

func TestCheck_IgnoredConstructs(t *testing.T) {
	problems := Check([]byte(`Feature: Login
  Scenario: User logs in
    Given a user
    But not an admin
    * anything
`))
	require.Len(t, problems, 2)
	assert.Equal(t, Problem{Line: 4, Severity: SeverityWarning, Message: "But steps are ignored"}, problems[0])
	assert.Equal(t, Problem{Line: 5, Severity: SeverityWarning, Message: "* steps are ignored"}, problems[1])
	assert.False(t, HasErrors(problems))
}

func TestCheck_DocString(t *testing.T) {
	problems := Check([]byte("Feature: F\n  Scenario: S\n    Given text:\n      \"\"\"\n      hello\n      \"\"\"\n"))
	require.Len(t, problems, 2)
	assert.Equal(t, 4, problems[0].Line)
	assert.Equal(t, 6, problems[1].Line)
}

func TestCheck_RepeatedExamples(t *testing.T) {
	problems := Check([]byte(`Feature: F
  Scenario Outline: O
    Given <a>
    Examples:
      | a |
      | x |
    Examples:
      | a |
      | y |

  Scenario Outline: P
    Given <a>
    Examples:
      | a |
      | z |
`))
	require.Len(t, problems, 1)
	assert.Equal(t, Problem{Line: 7, Severity: SeverityWarning, Message: repeatedExamples}, problems[0])
	assert.False(t, HasErrors(problems))
}

func TestGrammarProblems_ParsesLocation(t *testing.T) {
	problems := grammarProblems(testError("Parser errors:\n(3:5): expected: #EOF, got 'Feature: Again'"))
	require.Len(t, problems, 1)
	assert.Equal(t, 3, problems[0].Line)
	assert.Equal(t, "expected: #EOF, got 'Feature: Again'", problems[0].Message)
}

type testError string

func (e testError) Error() string { return string(e) }
