package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidVersion = errors.New("invalid version")

// Version identifies a Data Dragon patch. The zero value means "latest".
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion accepts "4.3.0", "4_3_0", "4.3" or "latest".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "latest" {
		return Version{}, nil
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == '_' })
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) IsLatest() bool {
	return v == Version{}
}

// Path is the version segment used in Data Dragon URLs.
func (v Version) Path() string {
	if v.IsLatest() {
		return "latest"
	}
	return fmt.Sprintf("%d_%d_%d", v.Major, v.Minor, v.Patch)
}

func (v Version) String() string {
	if v.IsLatest() {
		return "latest"
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// UnmarshalText lets settings files and env vars write the version as a plain string.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
