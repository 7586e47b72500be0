package json

// EncoderInterface is the stream-encoding seam satisfied by Encoder.
// Callers that only write documents can depend on it instead of the
// concrete type.
type EncoderInterface interface {
	Encode(any) error
}

// DecoderInterface is the stream-decoding counterpart, satisfied by Decoder.
type DecoderInterface interface {
	Decode(any) error
}

var (
	_ EncoderInterface = (*Encoder)(nil)
	_ DecoderInterface = (*Decoder)(nil)
)
