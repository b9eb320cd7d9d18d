// Package mmap maps local blob files read-only into memory.
//
// The local blob store serves expression files and manifests straight from
// the page cache through a Mapping; readers see the file contents as a byte
// slice without an intermediate copy.
//
//	m, err := mmap.Open("BRCA/TCGA-A1-A0SJ-01.tsv")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2). Windows uses MapViewOfFile; Advise is a
// no-op there.
package mmap
