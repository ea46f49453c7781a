package help

const ColdstartYAML = `# lead-enricher Quick Start

input:
  format: "CSV with a header row (Apollo exports work as-is)"
  name_columns: ["full_name", "Full Name", "First Name + Last Name", "first_name + last_name", "firstName + lastName"]
  company_columns: ["Company Name", "company", "company_name"]
  website_columns: ["Website", "website"]

output_columns:
  all: "every input column, then the enrichment columns"
  apollo: "the Apollo contact subset, then work/company/debug columns"

output_formats:
  csv: "default, rows only"
  json: "run summary + rows"
  yaml: "run summary + rows"

commands:
  basic: |
    lead-enricher enrich --input leads.csv --output enriched.csv

  apollo_subset: |
    lead-enricher enrich --input apollo.csv --columns apollo --output enriched.csv

  strict_matching: |
    lead-enricher enrich --input leads.csv --match-threshold 85 --num-papers 3

  json_report: |
    lead-enricher enrich --input leads.csv --format json > report.json

  cache_stats: |
    lead-enricher cache stats

  cache_clear: |
    lead-enricher cache clear

settings:
  num_papers: "1-20, default 5"
  match_threshold: "30-95, default 65 (inclusive)"
  max_rows: "1-500, default 50"
  per_row_delay: "0s-5s, default 500ms, applied after every row"
  safe_mode: "LinkedIn is never scraped; LinkedIn URLs pass through"

confidence:
  High: "match score >= 85"
  Medium: "match score >= 65"
  Low: "anything lower"

sources:
  - "OpenAlex author search, then most-cited works"
  - "Semantic Scholar when OpenAlex has no match at the threshold"
  - "Company website: meta description, og:description, title, first h1"

cache:
  - "Stored under .cache/lead_enricher (override with --cache-dir or LEAD_ENRICHER_CACHE_DIR)"
  - "Entries never expire; re-running a file is free"
  - "Failed lookups are not cached"

environment:
  OPENALEX_MAILTO: "joins the OpenAlex polite pool"
  SEMANTIC_SCHOLAR_API_KEY: "raises Semantic Scholar rate limits"
`
