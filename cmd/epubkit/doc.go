// Command epubkit unpacks, lists, edits and repacks ePub archives for a
// translation workflow.
//
// Usage:
//
//	epubkit extract book.epub ./work
//	epubkit list-content book.epub [--json | --table] [--inspect]
//	epubkit content-files ./work OEBPS/content.opf
//	epubkit update-meta ./work OEBPS/content.opf --lang zh-CN --title-suffix "(Chinese)"
//	epubkit pack ./work translated.epub
//	epubkit metadata ./work OEBPS/content.opf
//	epubkit config init
package main
