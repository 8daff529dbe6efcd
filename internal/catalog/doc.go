// package catalog turns exported playlists and scanned folders into track records.
//
// Three sources are understood:
//   - CSV exports with a header row. Columns are matched by name through a small alias table
//     ("Track Name", "Artist Name(s)", ...), falling back to title, artist, album by position.
//   - XML exports containing <track> elements with <title> (or <name>), <artist> and an optional <album>.
//   - Music folders, where each regular file becomes a record titled after its base name.
//
// Loaders never fail on individual bad records: rows without a title and incomplete tracks
// are dropped (and logged). Only unreadable or syntactically broken input is an error.
package catalog
