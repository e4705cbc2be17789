package migrate

import (
	"strconv"

	"gitlab.com/tozd/go/errors"

	"cocomig/internal/diag"
)

// Kind names a deprecated construct.
type Kind uint8

const (
	DeprecatedCoroutineDecorator Kind = iota + 1
	DeprecatedSuspendExpression
	DeprecatedValueReturn
	DeprecatedSpawnCall
)

var kindNames = [...]string{
	DeprecatedCoroutineDecorator: "DeprecatedCoroutineDecorator",
	DeprecatedSuspendExpression:  "DeprecatedSuspendExpression",
	DeprecatedValueReturn:        "DeprecatedValueReturn",
	DeprecatedSpawnCall:          "DeprecatedSpawnCall",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Code maps the construct to its diagnostic code.
func (k Kind) Code() diag.Code {
	switch k {
	case DeprecatedCoroutineDecorator:
		return diag.MigCoroutineDecorator
	case DeprecatedSuspendExpression:
		return diag.MigSuspendPoint
	case DeprecatedValueReturn:
		return diag.MigValueReturn
	case DeprecatedSpawnCall:
		return diag.MigSpawnCall
	}
	return diag.UnknownCode
}

// MarshalText lets findings serialise kinds by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText accepts the names MarshalText produces.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name != "" && name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return errors.Errorf("unknown finding kind %q", b)
}
