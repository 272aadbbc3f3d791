package benchmark

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/TheMichaelB/quihex/internal/storage"
	"github.com/TheMichaelB/quihex/test/testutil"
)

func BenchmarkLocalStoreWrite(b *testing.B) {
	sizes := []int{
		1024,        // 1KB
		64 * 1024,   // 64KB
		1024 * 1024, // 1MB
	}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Size%dKB", size/1024), func(b *testing.B) {
			store := storage.NewLocalStore(testutil.NewTestLogger())
			dir := b.TempDir()
			data := make([]byte, size)

			b.SetBytes(int64(size))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				path := filepath.Join(dir, "_posts", fmt.Sprintf("post-%d.md", i%100))
				if err := store.Write(path, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLocalStoreRead(b *testing.B) {
	store := storage.NewLocalStore(testutil.NewTestLogger())
	path := filepath.Join(b.TempDir(), "post.md")
	if err := os.WriteFile(path, make([]byte, 64*1024), 0644); err != nil {
		b.Fatal(err)
	}

	b.SetBytes(64 * 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.Read(path); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCopyDir(b *testing.B) {
	for _, files := range []int{1, 10, 50} {
		b.Run(fmt.Sprintf("%dFiles", files), func(b *testing.B) {
			store := storage.NewLocalStore(testutil.NewTestLogger())
			src := b.TempDir()
			for i := 0; i < files; i++ {
				if err := os.WriteFile(filepath.Join(src, fmt.Sprintf("img-%d.png", i)), make([]byte, 32*1024), 0644); err != nil {
					b.Fatal(err)
				}
			}
			dst := b.TempDir()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := store.CopyDir(src, dst); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
