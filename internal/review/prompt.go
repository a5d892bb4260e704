/*-------------------------------------------------------------------------
 *
 * prompt.go
 *    Review prompt construction for the CodeScore server
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/review/prompt.go
 *
 *-------------------------------------------------------------------------
 */

package review

import (
	"fmt"
	"strings"
)

const codePromptTemplate = `As a senior code reviewer, please analyze the following %s code and provide a comprehensive review:

%s

Please provide:
1. **Overall Code Score**: Rate the code from 1-10 and provide a brief summary of code quality
2. **Issues Found**: List any bugs, security vulnerabilities, or problems
3. **Code Quality**: Comments on readability, maintainability, and best practices
4. **Performance**: Any performance concerns or optimizations
5. **Recommendations**: Specific suggestions for improvement
6. **Security**: Security-related observations
7. **Final Score Breakdown**: Detailed scoring breakdown with justification

Format your response in clear sections with markdown formatting.`

const sqlPromptTemplate = `As a senior database developer and SQL expert, please analyze the following SQL query and provide a comprehensive review:

SQL Query:
%s

Production Database Context:
%s

Current Data Volumes:
%s

Please provide a comprehensive analysis considering the actual production environment:
1. **Query Analysis**: Evaluate the SQL syntax, logic, and structure
2. **Performance Review**: Analyze performance implications based on the ACTUAL data volumes provided (%s)
3. **Index Usage**: Review if the query efficiently uses the EXISTING indexes shown in the table schemas
4. **Optimization Suggestions**: Recommend specific improvements considering the current table structures and data load
5. **Security Assessment**: Check for SQL injection risks and security best practices
6. **Production Impact**: Assess the impact on production systems based on the REAL data volumes and table sizes provided
7. **Best Practices**: Suggest improvements following SQL best practices
8. **Alternative Approaches**: Provide alternative query structures if applicable
9. **Risk Assessment**: Identify potential risks when running this query against the actual production data volumes
10. **Overall Score**: Rate the query from 1-10 with detailed justification

IMPORTANT: Base your analysis on the ACTUAL production data provided:
- Table structures with real column definitions and existing indexes
- Current data volumes and growth patterns
- Performance metrics from the live environment

Format your response in clear sections with markdown formatting.`

/*
 * BuildPrompt assembles the review prompt. SQL submissions that carry
 * schema context get the database-specific prompt; everything else
 * gets the general code review prompt with the declared language
 * ("auto" when unknown).
 */
func BuildPrompt(code, language, tableStructures, dataVolume string) string {
	if language == "sql" && tableStructures != "" && dataVolume != "" {
		firstVolumeLine := dataVolume
		if idx := strings.Index(dataVolume, "\n"); idx >= 0 {
			firstVolumeLine = dataVolume[:idx]
		}
		return fmt.Sprintf(sqlPromptTemplate, code, tableStructures, dataVolume, firstVolumeLine)
	}

	if language == "" {
		language = "auto"
	}
	return fmt.Sprintf(codePromptTemplate, language, code)
}
