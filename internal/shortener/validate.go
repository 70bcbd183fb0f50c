package shortener

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxSlugLength bounds caller-chosen slugs.
const MaxSlugLength = 64

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type allocateInput struct {
	Original    string  `json:"original"   validate:"required,max=2048,weburl"`
	DesiredSlug *string `json:"customSlug" validate:"omitempty,slug"`
}

type renameInput struct {
	RecordID string `json:"urlId"   validate:"required"`
	NewSlug  string `json:"newSlug" validate:"required,slug"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]; name != "" && name != "-" {
			return name
		}

		return fld.Name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()

		return len(s) <= MaxSlugLength && slugPattern.MatchString(s)
	})

	_ = v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		return IsWebURL(fl.Field().String())
	})

	return v
}

// IsWebURL reports whether raw is an absolute http(s) URL with a dotted host.
func IsWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}

	host := u.Hostname()

	return host != "" && strings.Contains(strings.Trim(host, "."), ".") && !strings.ContainsAny(host, " \t")
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]

		return invalidInput(fe.Field() + " failed " + fe.Tag())
	}

	return invalidInput(err.Error())
}
