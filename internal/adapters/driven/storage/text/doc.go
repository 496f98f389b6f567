// Package text provides the flat-file implementation of driven.RecordStore.
//
// Each entity kind is stored in its own UTF-8 text file, one record per
// line, with no header or footer:
//
//	students.txt  S1,Ann|MATH101,88.500000;CS101,91.000000
//	courses.txt   C1,Algebra
//
// Saving a kind truncates and rewrites its file from the in-memory
// collection. The store also implements driven.RecordWatcher using
// fsnotify so that edits made by another process can be picked up.
//
// There is no file locking; two processes writing the same files race.
package text
