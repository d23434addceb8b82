package feedforward

import "compress/lzw"
import "encoding/json"
import "fmt"
import "io"
import "os"

// WriteCompressedWeightsToFile writes model weights to a lzw file
func (f FeedforwardNetwork) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = f.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteCompressedWeights writes model weights to a writer
func (f FeedforwardNetwork) WriteCompressedWeights(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)

	_, err := lw.Write([]byte("[\n"))
	if err != nil {
		return err
	}
	for i := 0; i < f.Len(); i++ {
		if i != 0 {
			_, err = lw.Write([]byte(",\n"))
			if err != nil {
				return err
			}
		}
		err := f.GetHashtron(i).WriteJson(lw)
		if err != nil {
			return err
		}
	}
	_, err = lw.Write([]byte("]\n"))
	if err != nil {
		return err
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model weights from a lzw file
func (f *FeedforwardNetwork) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return f.ReadCompressedWeights(file)
}

// ReadCompressedWeights reads model weights from a reader. The stream must
// hold exactly one hashtron per hashtron in the network.
func (f *FeedforwardNetwork) ReadCompressedWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	dec := json.NewDecoder(lr)
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("weights: expected array, got %v", tok)
	}
	var i int
	for ; dec.More(); i++ {
		if i >= f.Len() {
			return fmt.Errorf("weights: more than %d hashtrons", f.Len())
		}
		if err := f.GetHashtron(i).ReadJson(dec); err != nil {
			return fmt.Errorf("weights: hashtron %d: %w", i, err)
		}
	}
	if i != f.Len() {
		return fmt.Errorf("weights: got %d hashtrons, network has %d", i, f.Len())
	}
	_, err = dec.Token()
	return err
}
