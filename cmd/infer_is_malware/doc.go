// Package main classifies one feature vector as malware or benign. The
// vector is typed on the command line or picked by index from an XML file
// of <vector> elements.
package main
