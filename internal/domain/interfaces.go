package domain

import "context"

// Rasterizer renders every page of a document into an image file on disk.
type Rasterizer interface {
	// Rasterize returns the output directory and one PageImage per page,
	// all-or-nothing: any page failure aborts the whole document.
	Rasterize(ctx context.Context, docPath string) (string, []PageImage, error)
}

// CompletionClient submits one prompt-plus-image request to a hosted vision
// model and returns the free-form reply text.
type CompletionClient interface {
	Complete(ctx context.Context, system, prompt, imagePath string) (string, error)
}

// ProgressReporter receives batch progress after each processed image.
// Implementations must tolerate total == 0.
type ProgressReporter interface {
	Progress(done, total int, status string)
}

// ProgressFunc adapts a plain function to the ProgressReporter interface.
type ProgressFunc func(done, total int, status string)

func (f ProgressFunc) Progress(done, total int, status string) {
	f(done, total, status)
}
