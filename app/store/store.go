// Package store manages the on-disk submission database.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrExists    = errors.New("database already exists")
	ErrMissing   = errors.New("database does not exist")
	ErrCancelled = errors.New("operation cancelled")
)

// Confirm asks the operator a yes/no question.
type Confirm func(prompt string) bool

// Prompt returns a Confirm that writes prompt to out and accepts "y" or
// "Y" read from in.
func Prompt(in io.Reader, out io.Writer) Confirm {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, _ := reader.ReadString('\n')
		response := strings.TrimSpace(line)
		return response == "y" || response == "Y"
	}
}

// Yes confirms everything.
func Yes(string) bool { return true }

// Open opens the database at path, creating it when missing.
func Open(path string) (*badger.DB, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return db, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Init creates a new empty database.
func Init(path string) error {
	if exists(path) {
		return fmt.Errorf("%w at %s; clean it first to reinitialize", ErrExists, path)
	}
	db, err := Open(path)
	if err != nil {
		return err
	}
	return db.Close()
}

// Clean removes the database after confirmation.
func Clean(path string, confirm Confirm) error {
	if !exists(path) {
		return fmt.Errorf("%w at %s", ErrMissing, path)
	}
	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		return ErrCancelled
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	return nil
}

// Backup writes a full backup into dir and returns the file name.
func Backup(path, dir string) (string, error) {
	if !exists(path) {
		return "", fmt.Errorf("%w at %s", ErrMissing, path)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	db, err := Open(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	return backupFile, nil
}

// Restore replaces the database with the contents of backupFile. An
// existing database is only replaced after confirmation.
func Restore(path, backupFile string, confirm Confirm) (err error) {
	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if exists(path) {
		if !confirm("Existing database found. Do you want to replace it?") {
			return ErrCancelled
		}
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	db, err := Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during restore: %v", r)
		}
	}()
	if err := db.Load(f, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}
