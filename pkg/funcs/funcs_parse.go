package funcs

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/talss89/envtmpl/pkg/value"
)

// bareVersion matches a comparator written without an operator.
var bareVersion = regexp.MustCompile(`^v?\d+(\.\d+){0,2}(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)

// semverCompare never fails on bad input: an unset version or anything that
// does not parse simply does not match. A comparator without an operator is
// a caret requirement, so "1.2.3" accepts 1.5.0 but not 2.0.0.
func semverCompare(args []value.Value) (value.Value, error) {
	if _, absent := args[1].(value.NoValue); absent {
		return value.Bool(false), nil
	}
	constraint, err := semver.NewConstraint(caretDefault(args[0].String()))
	if err != nil {
		return value.Bool(false), nil
	}
	version, err := semver.StrictNewVersion(args[1].String())
	if err != nil {
		return value.Bool(false), nil
	}
	return value.Bool(constraint.Check(version)), nil
}

func caretDefault(constraint string) string {
	parts := strings.Split(constraint, ",")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if bareVersion.MatchString(part) {
			part = "^" + part
		}
		parts[i] = part
	}
	return strings.Join(parts, ", ")
}

// urlParse requires an absolute URL.
func urlParse(args []value.Value) (value.Value, error) {
	raw, err := stringArg("urlParse", args, 0)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, valueError("urlParse", err, "urlParse: malformed URL %q", raw)
	}
	if u.Scheme == "" {
		return nil, valueError("urlParse", nil, "urlParse: %q has no scheme", raw)
	}

	userinfo := ""
	if u.User != nil {
		userinfo = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			userinfo += ":" + pw
		}
	}
	return value.Mapping{
		"scheme":   value.String(u.Scheme),
		"host":     value.String(u.Host),
		"path":     value.String(u.Path),
		"query":    value.String(u.RawQuery),
		"opaque":   value.Nil{},
		"fragment": value.String(u.Fragment),
		"userinfo": value.String(userinfo),
	}, nil
}
