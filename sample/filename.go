package sample

import "regexp"

var fileNamePattern = regexp.MustCompile(`^(.+?)(_ext\d+)?(\.part\d+)?\.root$`)

// FileName is the structured form of a tuple file name.
type FileName struct {
	Base string // dataset ID
	Ext  string // "_extN" or empty
	Part string // ".partM" or empty
}

// ParseFileName decodes a tuple file name. The second return value is false
// if the name does not follow the tuple naming convention.
func ParseFileName(name string) (FileName, bool) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return FileName{}, false
	}
	return FileName{Base: m[1], Ext: m[2], Part: m[3]}, true
}

// ExtName returns the dataset ID qualified with the extension tag, if any.
func (f FileName) ExtName() string {
	return f.Base + f.Ext
}

// Mask returns the tightest glob pattern that selects this file. Multi-part
// outputs collapse into a single wildcard over the part number.
func (f FileName) Mask() string {
	if f.Part != "" {
		return f.ExtName() + ".part*.root"
	}
	return f.ExtName() + ".root"
}
