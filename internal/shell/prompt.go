package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/rogerio-castellano/inventory-keeper/internal/repo"
)

// readLine prints msg and reads one trimmed line. io.EOF is returned once input ends.
func (s *Shell) readLine(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		fmt.Fprintln(s.out)
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// promptFloat asks until the answer is a number >= min.
func (s *Shell) promptFloat(msg string, minimum float64) (float64, error) {
	for {
		v, err := s.promptFloatOptional(msg, minimum)
		if err != nil {
			return 0, err
		}
		if v != nil {
			return *v, nil
		}
		s.warn("Enter a valid number.")
	}
}

// promptFloatOptional is like promptFloat but returns nil on an empty answer.
func (s *Shell) promptFloatOptional(msg string, minimum float64) (*float64, error) {
	for {
		txt, err := s.readLine(msg)
		if err != nil {
			return nil, err
		}
		if txt == "" {
			return nil, nil
		}
		v, err := repo.ParsePrice(txt)
		if err != nil {
			s.warn("Enter a valid number.")
			continue
		}
		if v < minimum {
			s.warn(fmt.Sprintf("Must be >= %g.", minimum))
			continue
		}
		return &v, nil
	}
}

// promptInt asks until the answer is an integer >= min.
func (s *Shell) promptInt(msg string, minimum int) (int, error) {
	for {
		v, err := s.promptIntOptional(msg, minimum)
		if err != nil {
			return 0, err
		}
		if v != nil {
			return *v, nil
		}
		s.warn("Enter a valid integer.")
	}
}

func (s *Shell) promptIntOptional(msg string, minimum int) (*int, error) {
	for {
		txt, err := s.readLine(msg)
		if err != nil {
			return nil, err
		}
		if txt == "" {
			return nil, nil
		}
		v, err := repo.ParseQuantity(txt)
		if err != nil {
			s.warn("Enter a valid integer.")
			continue
		}
		if v < minimum {
			s.warn(fmt.Sprintf("Must be >= %d.", minimum))
			continue
		}
		return &v, nil
	}
}

func (s *Shell) confirm(msg string) (bool, error) {
	txt, err := s.readLine(msg + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(txt) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	}
	return false, nil
}
