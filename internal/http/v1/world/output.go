package world

// GetOutput is the plain-text greeting response. A []byte body is written as-is,
// bypassing content negotiation.
type GetOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// HeadOutput carries the GET representation's headers without a body.
type HeadOutput struct {
	ContentType   string `header:"Content-Type"`
	ContentLength string `header:"Content-Length"`
}

// OptionsOutput advertises the methods served on the greeting path.
type OptionsOutput struct {
	Allow string `header:"Allow"`
}
