// Package archive extracts and repacks zip document packages such as
// OpenDocument text files.
//
// Repacking normalizes member paths to be relative to the packed directory
// root, so the produced archive opens as a valid document package
// ("content.xml", "META-INF/manifest.xml") with no filesystem temp-path
// segments leaking into member names. A root-level "mimetype" member is
// written first and uncompressed, per the OpenDocument package convention.
package archive
