package label

import (
	"fmt"
	"strings"
)

// Scheme identifies elm-test locations.
const Scheme = "elmTest"

const schemePrefix = Scheme + "://"

// ToLocationURL addresses the result labelled label inside modelName.
// A label equal to the module name addresses the module itself and gets no
// path suffix.
func ToLocationURL(modelName, label string) string {
	if label == modelName {
		return fmt.Sprintf("%s://%s", Scheme, modelName)
	}
	return fmt.Sprintf("%s://%s/%s", Scheme, modelName, EncodeSegment(label))
}

// SplitLocationURL strips the scheme from a location URL.
func SplitLocationURL(location string) (string, bool) {
	return strings.CutPrefix(location, schemePrefix)
}

// FromLocationURLPath resolves the path portion of a location URL into the
// module's source file and the decoded label. The first segment is the
// module name, the last one is always the encoded label.
func FromLocationURLPath(path string) (moduleFile string, label string, err error) {
	p := LocationPath(path)

	moduleFile = ModuleFilePath(ModuleName(p))
	label, err = DecodeSegment(p.Last())
	if err != nil {
		return "", "", err
	}
	return moduleFile, label, nil
}

// LocationPath parses the path portion of a location URL, dropping empty
// segments so that "Mod/" and "Mod//x" read as "Mod" and "Mod/x".
func LocationPath(path string) Path {
	var segments []string
	for _, s := range strings.Split(path, Separator) {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return NewPath(segments...)
}
