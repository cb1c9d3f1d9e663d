package sstable

import "os"

// CreateFile creates path and opens it for writing, failing if the file
// already exists, mirroring teacher sstable.go's newSSTableFile.
func CreateFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, wrapErr(OpCreateFile, err)
	}
	return f, nil
}

// OpenFileForReading opens path read-only and returns its length, the
// way NewBasicSSTableReader opens the reader's *os.File.
func OpenFileForReading(path string) (*os.File, int64, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0444)
	if err != nil {
		return nil, 0, wrapErr(OpReadFile, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, wrapErr(OpReadFile, err)
	}
	return f, info.Size(), nil
}
