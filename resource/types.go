package resource

// Section is a run of related chunks in the graphics data.
type Section uint8

const (
	SectionPicture Section = iota
	SectionMaskedPicture
	SectionSprite
	SectionTile8
	SectionMaskedTile8
	SectionTile16
	SectionMaskedTile16
)

// Sections lists every section in the order they appear.
var Sections = []Section{
	SectionPicture,
	SectionMaskedPicture,
	SectionSprite,
	SectionTile8,
	SectionMaskedTile8,
	SectionTile16,
	SectionMaskedTile16,
}

func (s Section) String() string {
	switch s {
	case SectionPicture:
		return "Section(Picture)"
	case SectionMaskedPicture:
		return "Section(MaskedPicture)"
	case SectionSprite:
		return "Section(Sprite)"
	case SectionTile8:
		return "Section(Tile8)"
	case SectionMaskedTile8:
		return "Section(MaskedTile8)"
	case SectionTile16:
		return "Section(Tile16)"
	case SectionMaskedTile16:
		return "Section(MaskedTile16)"
	}
	return "Section(UNKNOWN)"
}

// Name is a short lower-case name, suitable for file names.
func (s Section) Name() string {
	switch s {
	case SectionPicture:
		return "pictures"
	case SectionMaskedPicture:
		return "pictures-masked"
	case SectionSprite:
		return "sprites"
	case SectionTile8:
		return "tiles8"
	case SectionMaskedTile8:
		return "tiles8-masked"
	case SectionTile16:
		return "tiles16"
	case SectionMaskedTile16:
		return "tiles16-masked"
	}
	return "unknown"
}

// Masked reports whether bitmaps in the section carry a transparency plane.
func (s Section) Masked() bool {
	switch s {
	case SectionMaskedPicture, SectionSprite, SectionMaskedTile8, SectionMaskedTile16:
		return true
	}
	return false
}
