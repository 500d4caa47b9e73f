// Package cheats parses Game Genie and GameShark codes and applies
// them to the address space.
package cheats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thelolagemann/gbcore/internal/mmu"
)

// Set is a collection of cheat codes. Game Genie codes patch the
// ROM once, GameShark codes are written to memory every frame.
type Set struct {
	Genie []GameGenieCode
	Shark []GameSharkCode
}

// ParseFile parses the cheat file with the given name.
func ParseFile(filename string) (*Set, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse parses a cheat file. The file format is as follows:
//
//	# Cheat Name
//	ABC-DEF-GHI
//	01FF10C0
//
// Cheat files may have any number of Game Genie and GameShark
// codes, mixed together. Each code takes the name of the comment
// preceding it.
func Parse(r io.Reader) (*Set, error) {
	s := &Set{}
	scanner := bufio.NewScanner(r)
	name := ""
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
			continue
		case text[0] == '#':
			name = strings.TrimSpace(text[1:])
			continue
		}

		if err := s.Add(text, name); err != nil {
			return nil, fmt.Errorf("cheats: line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Add parses code as a Game Genie or GameShark code, depending on
// its length, and adds it to the set.
func (s *Set) Add(code, name string) error {
	switch len(code) {
	case 7, 11: // ABC-DEF or ABC-DEF-GHI
		c, err := parseGameGenieCode(code)
		if err != nil {
			return err
		}
		c.Name = name
		s.Genie = append(s.Genie, c)
	case 8: // ABCDEFGH
		c, err := parseGameSharkCode(code)
		if err != nil {
			return err
		}
		c.Name = name
		s.Shark = append(s.Shark, c)
	default:
		return fmt.Errorf("invalid code: %s", code)
	}
	return nil
}

// Len returns the number of codes in the set.
func (s *Set) Len() int {
	return len(s.Genie) + len(s.Shark)
}

// Patch applies the Game Genie codes to mem, returning the number
// of codes that matched.
func (s *Set) Patch(mem mmu.Bus) int {
	patched := 0
	for _, c := range s.Genie {
		if c.Compare && mem.Read(c.Address) != c.OldData {
			continue
		}
		mem.Write(c.Address, c.NewData)
		patched++
	}
	return patched
}

// Apply writes the GameShark codes to mem.
func (s *Set) Apply(mem mmu.Bus) {
	for _, c := range s.Shark {
		mem.Write(c.Address, c.NewData)
	}
}
