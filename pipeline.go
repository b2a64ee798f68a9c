package descramble

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const outputSuffix = "_unscrambled"

const scanWorkers = 10

func outputPath(file string) string {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + outputSuffix + ext
}

func isImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".gif", ".jpg", ".jpeg":
		return true
	}
	return false
}

func (d *Descrambler) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a directory
			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (d *Descrambler) directoryWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			if err := filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
				if info.Name()[0] == '.' {
					if info.Mode().IsDir() {
						return filepath.SkipDir
					}
					return nil
				}

				// Ignore anything that isn't a normal file
				if !info.Mode().IsRegular() {
					return nil
				}

				// Check files are in the "top" directory
				if filepath.Dir(file) != dir {
					return nil
				}

				if !isImage(file) {
					return nil
				}

				// Don't descramble our own output on a rescan
				if strings.HasSuffix(strings.TrimSuffix(file, filepath.Ext(file)), outputSuffix) {
					return nil
				}

				crc, err := crcFile(file)
				if err != nil {
					return err
				}

				tileSize, o, err := d.db.FindRecipeByCRC(crc)
				if err != nil {
					return err
				}
				if o == nil {
					d.logger.Printf("No recipe for \"%s\", with CRC \"%s\"\n", file, crc)
					return nil
				}

				if err := Rearrange(file, tileSize, o, outputPath(file)); err != nil {
					return err
				}
				d.logger.Printf("Descrambled \"%s\"\n", file)

				return nil
			}); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree rooted at path and descrambles every
// image that has a recipe in the catalog, writing the result alongside
// the original. Images with no matching recipe are logged and left
// alone.
func (d *Descrambler) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	dirs, errc, err := d.findDirectories(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < scanWorkers; i++ {
		errc, err := d.directoryWorker(ctx, dirs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
