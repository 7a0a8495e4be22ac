package sandboxapi

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/gradedesk/core"
	"github.com/trezcool/gradedesk/core/session"
)

// password policy
var (
	pwdMinLen      = 6
	pwdMinLenText  = "password must contain at least 6 characters"
	pwdNotAllNum   = "password cannot be entirely numeric"
	pwdMaxSim      = .7
	pwdAttrSimText = "password cannot be similar to user attributes"
)

// checkPassword applies the registration password policy:
// - minLen: 6
// - no all numeric
// - no user attrs similarity
func checkPassword(acct session.NewAccount) error {
	pwd := acct.Password
	fail := func(text string) error {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: text})
	}

	if len([]rune(pwd)) < pwdMinLen {
		return fail(pwdMinLenText)
	}
	allNum := true
	for _, char := range pwd {
		if !unicode.IsDigit(char) {
			allNum = false
			break
		}
	}
	if allNum {
		return fail(pwdNotAllNum)
	}

	ratio := func(attr string) float64 {
		if attr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(strings.ToLower(pwd), ""), strings.Split(strings.ToLower(attr), "")).QuickRatio()
	}
	if ratio(acct.Username) >= pwdMaxSim || ratio(acct.Name) >= pwdMaxSim {
		return fail(pwdAttrSimText)
	}
	return nil
}
