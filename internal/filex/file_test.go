package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubdDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubdDir("preupload")
	require.NoError(t, err)

	want := filepath.Join(tmp, "preupload")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureSubdDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	first, err := EnsureSubdDir("preupload")
	require.NoError(t, err)

	second, err := EnsureSubdDir("preupload")
	require.NoError(t, err)

	require.Equal(t, first, second)
	fi, err := os.Stat(second)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureSubdDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("preupload", []byte("x"), 0o660))

	_, err := EnsureSubdDir("preupload")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestEnsureSubdDir_AbsolutePathUsedAsIs(t *testing.T) {
	target := filepath.Join(t.TempDir(), "files", "cv")

	got, err := EnsureSubdDir(target)
	require.NoError(t, err)
	require.Equal(t, target, got)

	fi, err := os.Stat(target)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestResumeExt(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "cv.pdf", want: ".pdf"},
		{name: "CV.DOCX", want: ".docx"},
		{name: "/tmp/old.doc", want: ".doc"},
		{name: "photo.png", wantErr: true},
		{name: "noext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResumeExt(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrUnsupportedFile)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCheckResume(t *testing.T) {
	require.NoError(t, CheckResume("a.pdf", []byte("%PDF")))
	require.ErrorIs(t, CheckResume("a.pdf", nil), common.ErrEmptyFile)
	require.ErrorIs(t, CheckResume("a.txt", []byte("x")), common.ErrUnsupportedFile)
	require.ErrorIs(t, CheckResume("a.pdf", make([]byte, MaxResumeSize+1)), common.ErrorValidation)
}

func TestReadResume(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jane.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	name, data, err := ReadResume(path)
	require.NoError(t, err)
	require.Equal(t, "jane.pdf", name)
	require.Equal(t, []byte("%PDF-1.4"), data)

	_, _, err = ReadResume(filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o600))
	_, _, err = ReadResume(txt)
	require.ErrorIs(t, err, common.ErrUnsupportedFile)

	empty := filepath.Join(dir, "empty.docx")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, _, err = ReadResume(empty)
	require.ErrorIs(t, err, common.ErrEmptyFile)
}
