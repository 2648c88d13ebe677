package facts

// groupTables folds consecutive table rows into table blocks. A block
// needs a header row immediately followed by a separator row; stray pipe
// rows without a separator produce no block.
func (c *Cache) groupTables() {
	n := c.LineCount()
	for ln := 1; ln < n; ln++ {
		header := c.Line(ln)
		sep := c.Line(ln + 1)
		if !header.TableRow || header.TableSep || !sep.TableSep {
			continue
		}

		end := ln + 1
		for end+1 <= n && c.Line(end+1).TableRow && !c.Line(end+1).TableSep {
			end++
		}

		c.TableBlocks = append(c.TableBlocks, TableBlock{
			StartLine: ln,
			SepLine:   ln + 1,
			EndLine:   end,
			Cols:      header.TableCols,
		})
		ln = end
	}
}
