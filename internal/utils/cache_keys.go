package utils

import "strconv"

const documentsListPrefix = "documents:list:v1:"

// DocumentsListCachePrefix covers every cached page of one collection.
func DocumentsListCachePrefix(collection string) string {
	return documentsListPrefix + collection + ":"
}

// BuildDocumentsListCacheKey keys one page. gen is the collection's write
// generation, so a page filled from a read that raced a write lands under a
// key later reads never ask for.
func BuildDocumentsListCacheKey(collection string, gen uint64, after string, limit int) string {
	return DocumentsListCachePrefix(collection) +
		"gen=" + strconv.FormatUint(gen, 10) +
		":limit=" + strconv.Itoa(limit) +
		":after=" + after
}
