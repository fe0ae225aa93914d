package superkmer

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/shenwei356/xopen"

	skerrors "github.com/tamirms/superkmer/errors"
)

// ExpandInput resolves a CLI input argument into the list of files to
// process. A plain path names a single input. An argument of the form
// "@LISTFILE" names a file containing one input path per line; blank lines
// and lines starting with '#' are skipped. The list file itself may be
// compressed.
func ExpandInput(input string) ([]string, error) {
	if !strings.HasPrefix(input, "@") {
		return []string{input}, nil
	}

	listPath := input[1:]
	fh, err := xopen.Ropen(listPath)
	if err != nil {
		return nil, fmt.Errorf("open list file %s: %w", listPath, err)
	}
	defer fh.Close()

	var files []string
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file %s: %w", listPath, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", skerrors.ErrEmptyListFile, listPath)
	}
	return files, nil
}
