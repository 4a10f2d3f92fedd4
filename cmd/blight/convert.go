package main

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"sync"

	blight "github.com/TraceMyers/Blight"
)

const convertWorkers = 10

func feedFiles(ctx context.Context, files []string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for _, f := range files {
			select {
			case out <- f:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func fileWorker(ctx context.Context, in <-chan string, opts blight.Options, logger *log.Logger) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			dir, name := filepath.Split(file)
			img, err := blight.Load(dir, name, blight.Infer, opts)
			if err != nil {
				select {
				case errc <- err:
				case <-ctx.Done():
				}
				return
			}
			logger.Printf("%s: %dx%d %s\n", file, img.Width, img.Height, img.Pixels.Tag())
		}
	}()
	return errc
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

func waitForPipeline(errcs ...<-chan error) error {
	errc := mergeErrors(errcs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

// runConvert decodes every file in files, spreading the work across up to
// convertWorkers goroutines the way MegaSD.Scan spread directoryWorker
// across a channel of directories. Each Load call here is independent: a
// distinct byte source and its own Options, never shared decoder state.
func runConvert(files []string, opts blight.Options, logger *log.Logger) error {
	if len(files) == 0 {
		return errors.New("no files given")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := feedFiles(ctx, files)

	workers := convertWorkers
	if workers > len(files) {
		workers = len(files)
	}

	errcList := make([]<-chan error, 0, workers)
	for i := 0; i < workers; i++ {
		errcList = append(errcList, fileWorker(ctx, in, opts, logger))
	}

	return waitForPipeline(errcList...)
}
