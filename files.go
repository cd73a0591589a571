/*
 * files.go, part of goCryst.
 *
 * Copyright 2025 The goCryst developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cryst

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//zstdReadCloser adapts *zstd.Decoder, which has a Close without an error
//return, to io.ReadCloser.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// openMaybeCompressed opens path for reading, transparently decompressing
// .gz and .zst files.
func openMaybeCompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return r, nil
	case ".zst":
		r, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return zstdReadCloser{r}, nil
	}
	return f, nil
}

//strips a trailing compression extension before format detection.
func formatName(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, ext := range []string{".gz", ".zst"} {
		if strings.HasSuffix(lower, ext) {
			base = base[:len(base)-len(ext)]
			lower = lower[:len(lower)-len(ext)]
			break
		}
	}
	switch {
	case strings.HasSuffix(lower, ".cif"):
		return "cif"
	case strings.HasSuffix(lower, ".poscar"), strings.HasSuffix(lower, ".vasp"):
		return "poscar"
	case strings.HasPrefix(lower, "poscar"), strings.HasPrefix(lower, "contcar"):
		return "poscar"
	}
	return ""
}

// FileRead reads a structure from a file, choosing the reader by the file
// name: .cif for CIF, .poscar/.vasp or a POSCAR/CONTCAR basename for VASP
// files, each optionally with a .gz or .zst compression suffix. Files of
// unknown or unparseable format yield a 400-class *Error.
func FileRead(path string) (*Structure, error) {
	format := formatName(path)
	if format == "" {
		return nil, NewBadRequest(
			fmt.Sprintf("Unsupported structure file format: %s.", filepath.Base(path)), nil)
	}
	f, err := openMaybeCompressed(path)
	if err != nil {
		msg := "Unable to parse CIF file."
		if format == "poscar" {
			msg = "Unable to parse VASP POSCAR/CONTCAR file."
		}
		return nil, NewBadRequest(msg, err)
	}
	defer f.Close()
	var s *Structure
	switch format {
	case "cif":
		s, err = CIFRead(f)
	case "poscar":
		s, err = PoscarRead(f)
	}
	if err != nil {
		return nil, ErrDecorate(err, "FileRead")
	}
	return s, nil
}
