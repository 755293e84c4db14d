package sound

import "fmt"

// Sfx names a sound effect. Each effect has one or more recorded variants
// and Play picks one at random.
type Sfx int

const (
	SfxBoot Sfx = iota
	SfxClick
	SfxDream
	SfxFoot
	SfxGrowl
	SfxGrunt
	SfxHaa
	SfxLocked
	SfxOpen
	SfxPlink
	SfxUnlock
	SfxWap
	SfxWha

	SfxCount
)

var sfxNames = [SfxCount]string{
	"boot", "click", "dream", "foot", "growl", "grunt", "haa",
	"locked", "open", "plink", "unlock", "wap", "wha",
}

var sfxVariants = [SfxCount]int{8, 1, 13, 8, 4, 4, 6, 1, 2, 4, 1, 5, 5}

func (s Sfx) String() string {
	if s < 0 || s >= SfxCount {
		return "unknown"
	}
	return sfxNames[s]
}

// Variants returns the number of variants of the effect.
func (s Sfx) Variants() int {
	if s < 0 || s >= SfxCount {
		return 0
	}
	return sfxVariants[s]
}

// VariantName returns the file stem of variant i, for example "boot_3" or
// "dream_07".
func (s Sfx) VariantName(i int) string {
	if s == SfxDream {
		return fmt.Sprintf("%s_%02d", s, i+1)
	}
	return fmt.Sprintf("%s_%d", s, i+1)
}
