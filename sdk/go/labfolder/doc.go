// Package labfolder is a client library for the LabFolder electronic
// lab notebook REST API.
//
// It authenticates a user, fetches and creates entries (notebook
// pages) and their elements (text, data, file, image, table, group),
// and converts tabular sheet data between the API's cell-grid wire
// format and a rectangular in-memory form.
//
// All operations are synchronous, one blocking call at a time, with a
// fixed short timeout per request and no automatic retry. A Client
// and the objects acting through it are not safe for concurrent use;
// callers serialize access externally.
package labfolder
