package launch

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Model is one row of `rigctld -l`.
type Model struct {
	ID           int
	Manufacturer string
	Name         string
	Version      string
	Status       string
	Macro        string
}

var columnGap = regexp.MustCompile(`\s{2,}|\t+`)

// ListModels runs `program -l` and returns the supported rig models.
func ListModels(ctx context.Context, program string) ([]Model, error) {
	output, err := exec.CommandContext(ctx, program, "-l").Output()
	if err != nil {
		return nil, fmt.Errorf("%s -l: %w", program, err)
	}

	return ParseModels(string(output)), nil
}

// ParseModels parses the `rigctld -l` table. The header and any line that
// does not start with a model number are skipped.
func ParseModels(output string) []Model {
	var models []Model

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		cols := columnGap.Split(strings.TrimSpace(scanner.Text()), -1)
		if len(cols) < 3 {
			continue
		}

		id, err := strconv.Atoi(cols[0])
		if err != nil {
			continue
		}

		m := Model{ID: id, Manufacturer: cols[1], Name: cols[2]}

		if len(cols) > 3 {
			m.Version = cols[3]
		}

		if len(cols) > 4 {
			m.Status = cols[4]
		}

		if len(cols) > 5 {
			m.Macro = cols[5]
		}

		models = append(models, m)
	}

	return models
}
