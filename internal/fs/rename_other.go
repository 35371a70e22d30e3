//go:build !linux && !darwin

package fs

func renameNoReplace(src, dst string) error {
	return renameChecked(src, dst)
}
