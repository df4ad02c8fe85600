package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the archive suffix accepted in the incoming directory.
const Extension = ".tar"

// TarExtractor implements domain.Extractor. Each archive <name>.tar is
// unpacked into <workspace>/<name>.
type TarExtractor struct {
	workspaceDir string
}

func New(workspaceDir string) *TarExtractor {
	return &TarExtractor{workspaceDir: workspaceDir}
}

// SubmissionName derives the submission directory name from an archive path.
func SubmissionName(archivePath string) string {
	return strings.TrimSuffix(filepath.Base(archivePath), Extension)
}

// Extract unpacks regular files and directories. Entries escaping the
// destination and link entries are rejected.
func (e *TarExtractor) Extract(archivePath string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	dest := filepath.Join(e.workspaceDir, SubmissionName(archivePath))
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", err
	}

	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", archivePath, err)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return "", err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return "", err
			}
		case tar.TypeSymlink, tar.TypeLink:
			return "", fmt.Errorf("archive %s: link entry %q not allowed", archivePath, hdr.Name)
		default:
			// pax headers and other metadata entries carry no content
		}
	}

	return dest, nil
}

func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes destination", name)
	}
	return target, nil
}

func writeFile(path string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0644
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
