// Package backup produces and restores encrypted snapshots of a vault
// directory. A snapshot is a zip of the vault's JSON collection files,
// sealed with AES-256-GCM under an Argon2id-derived key.
package backup

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Create archives every .json file in vaultDir, encrypts the archive
// with the passphrase, and writes it to dstPath.
func Create(vaultDir, dstPath, passphrase string) error {
	entries, err := os.ReadDir(vaultDir)
	if err != nil {
		return fmt.Errorf("read vault dir: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(vaultDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		w, err := zw.Create(entry.Name())
		if err != nil {
			return fmt.Errorf("archive %s: %w", entry.Name(), err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", entry.Name(), err)
		}
		count++
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("nothing to back up in %s", vaultDir)
	}

	sealed, err := seal(buf.Bytes(), passphrase)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dstPath, sealed, 0o600); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Restore decrypts the snapshot at srcPath and unpacks its files into
// vaultDir, overwriting existing collections. The caller should reopen
// the vault afterwards.
func Restore(srcPath, vaultDir, passphrase string) error {
	sealed, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	data, err := unseal(sealed, passphrase)
	if err != nil {
		return err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	if err := os.MkdirAll(vaultDir, 0o755); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}

	for _, f := range zr.File {
		// Archive entries are flat file names written by Create.
		name := filepath.Base(f.Name)
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(vaultDir, name), content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
