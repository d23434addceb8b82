package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/neurlang/intentclassifier/classifier"
	"github.com/neurlang/intentclassifier/config"
	"github.com/neurlang/intentclassifier/hash"
	"github.com/neurlang/intentclassifier/logging"
	"github.com/neurlang/intentclassifier/model"
	"github.com/neurlang/intentclassifier/vector"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("infer_is_malware", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	modelPath := fs.String("model", "", "model file (.json.lzw for hashtron, .json for logistic)")
	format := fs.String("format", "", "model format: hashtron or logistic")
	features := fs.String("features", "", "comma separated feature values")
	xmlPath := fs.String("xml", "", "XML file with <vector> elements")
	index := fs.Int("index", 0, "which vector of the XML file to classify")
	list := fs.Bool("list", false, "list the vectors of the XML file and exit")
	length := fs.Int("length", 0, "number of features (34 or 51)")
	threshold := fs.Float64("threshold", -1, "decision threshold, default 0.5")
	logLevel := fs.String("loglevel", "", "DEBUG, INFO, WARN or ERROR")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(stdout, "Error:", err)
			return 1
		}
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}
	if *format != "" {
		cfg.Model.Format = *format
	}
	if *length > 0 {
		cfg.Vector.Length = *length
	}
	if *threshold >= 0 {
		t := float32(*threshold)
		cfg.Classifier.Threshold = &t
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stdout, "Error:", err)
		return 1
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(stdout, "Error:", err)
		return 1
	}
	log := logging.Configure(stderr, level, cfg.Logging.Format)
	brand, cpuFeatures := hash.CPUBrand()
	log.Debug("cpu", "brand", brand, "features", cpuFeatures, "parallelism", hash.Parallelism())

	if *list {
		if err := listDocument(cfg, *xmlPath, stdout, log); err != nil {
			fmt.Fprintln(stdout, "Error:", err)
			return 1
		}
		return 0
	}

	v, err := pickVector(cfg, *features, *xmlPath, *index, log)
	if err != nil {
		fmt.Fprintln(stdout, "Error:", err)
		return 1
	}

	m, err := model.Open(cfg.Model, cfg.Vector.Length, model.WithLogger(log))
	if err != nil {
		fmt.Fprintln(stdout, "Error:", err)
		return 1
	}
	inv := classifier.New(m,
		classifier.WithThreshold(cfg.Threshold()),
		classifier.WithExpectedLength(cfg.Vector.Length),
		classifier.WithLogger(log))
	defer func() {
		if err := inv.Close(); err != nil {
			log.Warn("closing classifier", "error", err)
		}
	}()

	r, err := inv.Predict(v)
	if err != nil {
		fmt.Fprintln(stdout, "Error:", err)
		return 1
	}
	fmt.Fprintln(stdout, r)
	log.Info("classified", "id", r.ID, "score", r.Score, "threshold", r.Threshold)
	return 0
}

var errNoInput = errors.New("give either -features or -xml")

func pickVector(cfg *config.Config, features, xmlPath string, index int, log *slog.Logger) (vector.FeatureVector, error) {
	switch {
	case features != "" && xmlPath != "":
		return nil, errNoInput
	case features != "":
		return vector.DecodeLine(features, cfg.Vector.Length)
	case xmlPath != "":
		vectors, _, err := readDocument(cfg, xmlPath, log)
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(vectors) {
			return nil, fmt.Errorf("%s has %d valid vectors, no vector %d", xmlPath, len(vectors), index)
		}
		return vectors[index], nil
	}
	return nil, errNoInput
}

func listDocument(cfg *config.Config, xmlPath string, w io.Writer, log *slog.Logger) error {
	if xmlPath == "" {
		return errors.New("-list needs -xml")
	}
	_, texts, err := readDocument(cfg, xmlPath, log)
	if err != nil {
		return err
	}
	for i, text := range texts {
		fmt.Fprintf(w, "%d\t%s\n", i, text)
	}
	return nil
}

func readDocument(cfg *config.Config, xmlPath string, log *slog.Logger) ([]vector.FeatureVector, []string, error) {
	if !cfg.DocumentImport() {
		return nil, nil, errors.New("document import is disabled")
	}
	file, err := os.Open(xmlPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	var vectors []vector.FeatureVector
	var texts []string
	dec := vector.NewDocumentDecoder(file, cfg.Vector.Length)
	dec.SetLogger(log)
	for dec.Next() {
		vectors = append(vectors, dec.Vector())
		texts = append(texts, dec.Text())
	}
	if err := dec.Err(); err != nil {
		// keep what was decoded before the break
		log.Warn("document is broken", "path", xmlPath, "vectors", len(vectors), "error", err)
	}
	log.Debug("document loaded", "path", xmlPath, "vectors", len(vectors))
	return vectors, texts, nil
}
