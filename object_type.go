package objfs

// Raw type codes reported by Content implementations.
const (
	TypeCodeFolder uint32 = 0x0001
	TypeCodeFile   uint32 = 0x0002
)

// ObjectType classifies a remote object as a folder, a file, or something
// the package does not recognize.
// This is a sealed interface - values are created with the Folder, File and
// Other constructors or with ObjectTypeFromCode, and compare with ==.
type ObjectType interface {
	doNotImplement(ObjectType)
}

// Folder returns the ObjectType of a folder.
func Folder() ObjectType {
	return TypeFolder{}
}

// File returns the ObjectType of a regular file.
func File() ObjectType {
	return TypeFile{}
}

// Other returns the ObjectType carrying a remote-reported code the package
// does not recognize. The code is preserved so that future remote-reported
// types never force a failure.
func Other(code uint32) ObjectType {
	return TypeOther{Code: code}
}

// ObjectTypeFromCode maps a remote-reported raw type code to an ObjectType.
func ObjectTypeFromCode(code uint32) ObjectType {
	switch code {
	case TypeCodeFolder:
		return Folder()
	case TypeCodeFile:
		return File()
	default:
		return Other(code)
	}
}

// TypeCode maps an ObjectType back to its raw code.
func TypeCode(t ObjectType) uint32 {
	switch t := t.(type) {
	case TypeFolder:
		return TypeCodeFolder
	case TypeFile:
		return TypeCodeFile
	case TypeOther:
		return t.Code
	default:
		return 0
	}
}

// TypeFolder represents a folder.
type TypeFolder struct{}

func (TypeFolder) doNotImplement(ObjectType) {}

// TypeFile represents a regular file.
type TypeFile struct{}

func (TypeFile) doNotImplement(ObjectType) {}

// TypeOther represents a remote-reported type the package does not
// recognize, carrying the raw code as reported.
type TypeOther struct {
	Code uint32
}

func (TypeOther) doNotImplement(ObjectType) {}
