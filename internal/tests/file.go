package tests

import (
	"os"
	"path/filepath"
	"testing"
)

var testDataPath string

func init() {
	pwd, _ := os.Getwd()
	testDataPath = filepath.Join(pwd, ".testdata")
}

func GetTestFileContent(t *testing.T, filename string) []byte {
	b, err := os.ReadFile(GetTestFilePath(filename))
	if err != nil {
		t.Fatalf("read test file %s: %v", filename, err)
	}
	return b
}

func GetTestFilePath(filename string) string {
	return filepath.Join(testDataPath, filename)
}
