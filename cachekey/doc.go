// Package cachekey recovers the original cache key from the header of an nginx
// proxy cache file.
//
// nginx writes a binary preamble at the start of every cache file, followed by
// a line of the form
//
//	\nKEY: <key>\n
//
// and then the cached response headers and body. The key is usually the
// request URL (whatever proxy_cache_key evaluated to). Everything needed to
// find it lives in the first HeaderSize bytes of the file, so callers read
// only that much.
//
// KeyFromHeader is a pure function over a buffer and never reads outside
// the valid-length window it is given. ReadKey wraps it for an io.Reader.
package cachekey
