package main

// DashboardHTML returns the embedded dashboard HTML
func DashboardHTML() string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Seller Dashboard - Marketplace Listing Analysis</title>
    <meta name="description" content="Upload marketplace listing exports and analyze sellers">
    <link rel="icon" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='.9em' font-size='90'>📦</text></svg>">
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <link rel="preconnect" href="https://fonts.googleapis.com">
    <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
    <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap" rel="stylesheet">
    <style>
        :root {
            --bg-primary: #0a0e14;
            --bg-secondary: #131920;
            --bg-tertiary: #1a2029;
            --bg-card: #151b23;
            --border-color: #2d3748;
            --text-primary: #e2e8f0;
            --text-secondary: #8b949e;
            --text-muted: #64748b;
            --accent-blue: #3b82f6;
            --accent-cyan: #22d3ee;
            --accent-green: #22c55e;
            --accent-red: #ef4444;
            --accent-yellow: #eab308;
            --accent-orange: #f97316;
            --accent-purple: #a855f7;
            --accent-pink: #ec4899;
            --shadow-md: 0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1);
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: 'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            background: var(--bg-primary);
            color: var(--text-primary);
            min-height: 100vh;
            line-height: 1.5;
        }

        .navbar {
            background: var(--bg-secondary);
            border-bottom: 1px solid var(--border-color);
            padding: 0 24px;
            height: 64px;
            display: flex;
            align-items: center;
            justify-content: space-between;
            position: sticky;
            top: 0;
            z-index: 100;
        }

        .navbar-brand {
            display: flex;
            align-items: center;
            gap: 12px;
            color: var(--text-primary);
            font-weight: 600;
            font-size: 16px;
        }

        .navbar-actions {
            display: flex;
            align-items: center;
            gap: 12px;
            font-size: 13px;
            color: var(--text-secondary);
        }

        .btn {
            background: var(--bg-tertiary);
            border: 1px solid var(--border-color);
            color: var(--text-primary);
            padding: 8px 16px;
            border-radius: 8px;
            font-size: 13px;
            font-weight: 500;
            cursor: pointer;
            transition: background 0.2s, border-color 0.2s;
        }

        .btn:hover {
            border-color: var(--accent-blue);
        }

        .btn-primary {
            background: var(--accent-blue);
            border-color: var(--accent-blue);
            color: #fff;
        }

        .btn-primary:hover {
            background: #2563eb;
        }

        .btn:disabled {
            opacity: 0.5;
            cursor: not-allowed;
        }

        .main-content {
            padding: 24px 40px;
            max-width: 1600px;
            margin: 0 auto;
        }

        /* Login card */
        .login-wrap {
            display: flex;
            align-items: center;
            justify-content: center;
            min-height: 70vh;
        }

        .login-card {
            background: var(--bg-card);
            border: 1px solid var(--border-color);
            border-radius: 12px;
            padding: 36px;
            width: 360px;
            box-shadow: var(--shadow-md);
        }

        .login-card h2 {
            font-size: 20px;
            margin-bottom: 4px;
        }

        .login-card p {
            color: var(--text-secondary);
            font-size: 13px;
            margin-bottom: 24px;
        }

        .login-card label {
            display: block;
            font-size: 12px;
            color: var(--text-secondary);
            margin-bottom: 6px;
        }

        .login-card input {
            width: 100%;
            background: var(--bg-tertiary);
            border: 1px solid var(--border-color);
            color: var(--text-primary);
            padding: 10px 12px;
            border-radius: 8px;
            font-size: 14px;
            outline: none;
            margin-bottom: 16px;
        }

        .login-card input:focus {
            border-color: var(--accent-blue);
        }

        .login-error {
            color: var(--accent-red);
            font-size: 13px;
            margin-bottom: 12px;
            display: none;
        }

        /* Upload zone */
        .upload-zone {
            border: 2px dashed var(--border-color);
            border-radius: 12px;
            padding: 48px;
            text-align: center;
            color: var(--text-secondary);
            cursor: pointer;
            transition: border-color 0.2s, background 0.2s;
            margin-bottom: 24px;
        }

        .upload-zone:hover, .upload-zone.drag {
            border-color: var(--accent-blue);
            background: var(--bg-secondary);
        }

        .upload-zone .icon {
            font-size: 36px;
            margin-bottom: 12px;
        }

        .upload-meta {
            font-size: 12px;
            color: var(--text-muted);
            margin-top: 8px;
        }

        /* Layout: sidebar + panel */
        .workspace {
            display: none;
            grid-template-columns: 280px 1fr;
            gap: 24px;
        }

        .seller-list {
            background: var(--bg-card);
            border: 1px solid var(--border-color);
            border-radius: 12px;
            overflow: hidden;
            align-self: start;
        }

        .seller-list .header {
            padding: 14px 16px;
            border-bottom: 1px solid var(--border-color);
            font-size: 13px;
            font-weight: 600;
            color: var(--text-secondary);
        }

        .seller-item {
            display: flex;
            align-items: center;
            justify-content: space-between;
            padding: 10px 16px;
            cursor: pointer;
            font-size: 13px;
            border-bottom: 1px solid var(--border-color);
            transition: background 0.15s;
        }

        .seller-item:last-child {
            border-bottom: none;
        }

        .seller-item:hover {
            background: var(--bg-tertiary);
        }

        .seller-item.active {
            background: var(--bg-tertiary);
            border-left: 3px solid var(--accent-blue);
        }

        .seller-item .count-badge {
            background: var(--bg-primary);
            border: 1px solid var(--border-color);
            border-radius: 10px;
            padding: 1px 8px;
            font-size: 11px;
            color: var(--text-secondary);
        }

        /* Tabs */
        .tabs {
            display: flex;
            gap: 4px;
            border-bottom: 1px solid var(--border-color);
            margin-bottom: 20px;
        }

        .tab-btn {
            background: transparent;
            border: none;
            color: var(--text-secondary);
            padding: 10px 16px;
            font-size: 13px;
            font-weight: 500;
            cursor: pointer;
            border-bottom: 2px solid transparent;
        }

        .tab-btn.active {
            color: var(--text-primary);
            border-bottom-color: var(--accent-blue);
        }

        .tab-pane {
            display: none;
        }

        .tab-pane.active {
            display: block;
        }

        /* Stat cards */
        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 16px;
            margin-bottom: 24px;
        }

        .stat-card {
            background: var(--bg-card);
            border: 1px solid var(--border-color);
            border-radius: 12px;
            padding: 20px;
        }

        .stat-card .label {
            font-size: 12px;
            color: var(--text-secondary);
            margin-bottom: 6px;
        }

        .stat-card .value {
            font-size: 26px;
            font-weight: 700;
        }

        .stat-card .value.green { color: var(--accent-green); }
        .stat-card .value.cyan { color: var(--accent-cyan); }
        .stat-card .value.orange { color: var(--accent-orange); }

        .chart-card {
            background: var(--bg-card);
            border: 1px solid var(--border-color);
            border-radius: 12px;
            padding: 20px;
            margin-bottom: 24px;
        }

        .chart-card h3 {
            font-size: 14px;
            font-weight: 600;
            margin-bottom: 16px;
        }

        .chart-wrap {
            position: relative;
            height: 320px;
        }

        /* Table */
        .table-controls {
            display: flex;
            gap: 12px;
            margin-bottom: 16px;
            align-items: center;
            flex-wrap: wrap;
        }

        .table-controls input, .table-controls select {
            background: var(--bg-tertiary);
            border: 1px solid var(--border-color);
            color: var(--text-primary);
            padding: 8px 12px;
            border-radius: 8px;
            font-size: 13px;
            outline: none;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 13px;
        }

        th {
            text-align: left;
            padding: 10px 12px;
            color: var(--text-secondary);
            font-weight: 600;
            border-bottom: 1px solid var(--border-color);
            cursor: pointer;
            user-select: none;
            white-space: nowrap;
        }

        th:hover {
            color: var(--text-primary);
        }

        td {
            padding: 10px 12px;
            border-bottom: 1px solid var(--border-color);
            vertical-align: top;
        }

        td.price {
            font-variant-numeric: tabular-nums;
            white-space: nowrap;
        }

        td a {
            color: var(--accent-cyan);
            text-decoration: none;
        }

        td a:hover {
            text-decoration: underline;
        }

        .pagination {
            display: flex;
            align-items: center;
            gap: 12px;
            margin-top: 16px;
            font-size: 13px;
            color: var(--text-secondary);
        }

        .export-row {
            display: flex;
            gap: 12px;
            flex-wrap: wrap;
        }

        .empty-note {
            padding: 24px;
            text-align: center;
            color: var(--text-muted);
            font-size: 13px;
        }

        .toast {
            position: fixed;
            bottom: 24px;
            right: 24px;
            background: var(--bg-card);
            border: 1px solid var(--accent-red);
            color: var(--text-primary);
            padding: 12px 18px;
            border-radius: 8px;
            font-size: 13px;
            display: none;
            box-shadow: var(--shadow-md);
        }

        @media (max-width: 900px) {
            .workspace { grid-template-columns: 1fr; }
            .main-content { padding: 16px; }
        }
    </style>
</head>
<body>
    <nav class="navbar">
        <div class="navbar-brand">📦 Seller Dashboard</div>
        <div class="navbar-actions">
            <span id="userLabel"></span>
            <button class="btn" id="resetBtn" style="display:none" onclick="resetUpload()">New upload</button>
            <button class="btn" id="logoutBtn" style="display:none" onclick="doLogout()">Log out</button>
        </div>
    </nav>

    <div class="main-content">
        <!-- Login -->
        <div class="login-wrap" id="loginView">
            <div class="login-card">
                <h2>Sign in</h2>
                <p>Access to the listing analysis dashboard</p>
                <div class="login-error" id="loginError"></div>
                <form onsubmit="doLogin(event)">
                    <label for="loginUser">Username</label>
                    <input id="loginUser" autocomplete="username" required>
                    <label for="loginPass">Password</label>
                    <input id="loginPass" type="password" autocomplete="current-password" required>
                    <button class="btn btn-primary" style="width:100%" type="submit">Sign in</button>
                </form>
            </div>
        </div>

        <!-- Upload -->
        <div id="uploadView" style="display:none">
            <div class="upload-zone" id="dropZone" onclick="document.getElementById('fileInput').click()">
                <div class="icon">📄</div>
                <div><strong>Upload a listing CSV</strong></div>
                <div class="upload-meta">Drag a file here or click to browse. UTF-8, Shift_JIS and UTF-16 exports are detected automatically.</div>
            </div>
            <input type="file" id="fileInput" accept=".csv,text/csv" style="display:none" onchange="uploadFile(this.files[0])">
        </div>

        <!-- Workspace -->
        <div class="workspace" id="workspace">
            <aside class="seller-list">
                <div class="header">Sellers <span id="sellerCount"></span></div>
                <div id="sellerItems"></div>
            </aside>

            <section>
                <div class="tabs">
                    <button class="tab-btn active" data-tab="overview" onclick="switchTab(this)">Overview</button>
                    <button class="tab-btn" data-tab="prices" onclick="switchTab(this)">Prices</button>
                    <button class="tab-btn" data-tab="products" onclick="switchTab(this)">Products</button>
                    <button class="tab-btn" data-tab="export" onclick="switchTab(this)">Export</button>
                </div>

                <div class="tab-pane active" id="tab-overview">
                    <div class="stats-grid">
                        <div class="stat-card"><div class="label">Listings</div><div class="value" id="statTotal">-</div></div>
                        <div class="stat-card"><div class="label">Average price</div><div class="value cyan" id="statAvg">-</div></div>
                        <div class="stat-card"><div class="label">Lowest price</div><div class="value green" id="statMin">-</div></div>
                        <div class="stat-card"><div class="label">Highest price</div><div class="value orange" id="statMax">-</div></div>
                        <div class="stat-card"><div class="label">Feedback</div><div class="value" id="statFeedback" style="font-size:18px">-</div></div>
                    </div>
                    <div class="chart-card">
                        <h3>Category breakdown</h3>
                        <div class="chart-wrap"><canvas id="categoryChart"></canvas></div>
                    </div>
                </div>

                <div class="tab-pane" id="tab-prices">
                    <div class="chart-card">
                        <h3>Price distribution</h3>
                        <div class="chart-wrap"><canvas id="priceChart"></canvas></div>
                    </div>
                    <div class="chart-card">
                        <h3>Bucket detail</h3>
                        <table>
                            <thead><tr><th>Range</th><th>Listings</th><th>Share</th></tr></thead>
                            <tbody id="bucketRows"></tbody>
                        </table>
                    </div>
                </div>

                <div class="tab-pane" id="tab-products">
                    <div class="table-controls">
                        <input id="categoryFilter" placeholder="Filter by category..." oninput="debouncedReload()">
                        <select id="pageSize" onchange="state.page=1; loadListings()">
                            <option value="25">25 / page</option>
                            <option value="50" selected>50 / page</option>
                            <option value="100">100 / page</option>
                        </select>
                    </div>
                    <div class="chart-card" style="padding:0; overflow-x:auto">
                        <table>
                            <thead>
                                <tr>
                                    <th onclick="sortBy('title')">Title</th>
                                    <th onclick="sortBy('price')">Price</th>
                                    <th onclick="sortBy('category')">Category</th>
                                    <th>Condition</th>
                                    <th onclick="sortBy('listed_at')">Listed</th>
                                    <th>Link</th>
                                </tr>
                            </thead>
                            <tbody id="productRows"></tbody>
                        </table>
                        <div class="empty-note" id="productsEmpty" style="display:none">No listings match this filter</div>
                    </div>
                    <div class="pagination">
                        <button class="btn" id="prevPage" onclick="changePage(-1)">Prev</button>
                        <span id="pageLabel"></span>
                        <button class="btn" id="nextPage" onclick="changePage(1)">Next</button>
                    </div>
                </div>

                <div class="tab-pane" id="tab-export">
                    <div class="chart-card">
                        <h3>Download this seller's slice</h3>
                        <div class="export-row">
                            <button class="btn btn-primary" onclick="downloadExport('xlsx')">Excel (.xlsx)</button>
                            <button class="btn" onclick="downloadExport('csv')">CSV</button>
                            <button class="btn" onclick="downloadExport('json')">Analysis JSON</button>
                            <button class="btn" onclick="downloadChart('prices')">Price chart (PNG)</button>
                            <button class="btn" onclick="downloadChart('categories')">Category chart (PNG)</button>
                        </div>
                    </div>
                </div>
            </section>
        </div>
    </div>

    <div class="toast" id="toast"></div>

    <script>
        const state = {
            datasetId: null,
            seller: null,
            sort: 'price',
            dir: 'desc',
            page: 1
        };
        let categoryChart = null;
        let priceChart = null;
        let debounceTimer = null;

        const palette = ['#3b82f6', '#22d3ee', '#22c55e', '#eab308', '#f97316', '#a855f7', '#ec4899', '#ef4444', '#84cc16', '#64748b'];

        function escapeHtml(str) {
            if (!str) return '';
            return String(str).replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;').replace(/"/g, '&quot;');
        }

        function money(v) {
            if (v === null || v === undefined) return '-';
            return '$' + Number(v).toLocaleString(undefined, {minimumFractionDigits: 2, maximumFractionDigits: 2});
        }

        function showToast(msg) {
            const t = document.getElementById('toast');
            t.textContent = msg;
            t.style.display = 'block';
            setTimeout(() => { t.style.display = 'none'; }, 4000);
        }

        async function api(path, opts) {
            const res = await fetch(path, opts);
            if (res.status === 401) {
                showView('login');
                throw new Error('session expired');
            }
            const body = await res.json().catch(() => ({}));
            if (!res.ok) throw new Error(body.error || ('request failed (' + res.status + ')'));
            return body;
        }

        function showView(which) {
            document.getElementById('loginView').style.display = which === 'login' ? 'flex' : 'none';
            document.getElementById('uploadView').style.display = which === 'upload' ? 'block' : 'none';
            document.getElementById('workspace').style.display = which === 'workspace' ? 'grid' : 'none';
            document.getElementById('logoutBtn').style.display = which === 'login' ? 'none' : 'inline-block';
            document.getElementById('resetBtn').style.display = which === 'workspace' ? 'inline-block' : 'none';
        }

        // ---- auth ----

        async function doLogin(ev) {
            ev.preventDefault();
            const err = document.getElementById('loginError');
            err.style.display = 'none';
            try {
                const body = await api('/api/login', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify({
                        username: document.getElementById('loginUser').value,
                        password: document.getElementById('loginPass').value
                    })
                });
                document.getElementById('userLabel').textContent = body.user;
                showView('upload');
            } catch (e) {
                err.textContent = e.message;
                err.style.display = 'block';
            }
        }

        async function doLogout() {
            try { await api('/api/logout', {method: 'POST'}); } catch (e) {}
            document.getElementById('userLabel').textContent = '';
            showView('login');
        }

        async function checkSession() {
            try {
                const body = await api('/api/session');
                document.getElementById('userLabel').textContent = body.user;
                showView('upload');
            } catch (e) {
                showView('login');
            }
        }

        // ---- upload ----

        async function uploadFile(file) {
            if (!file) return;
            const form = new FormData();
            form.append('file', file);
            try {
                const body = await api('/api/upload', {method: 'POST', body: form});
                state.datasetId = body.id;
                renderSellers(body.sellers || []);
                showView('workspace');
                if (body.sellers && body.sellers.length > 0) {
                    selectSeller(body.sellers[0].seller);
                }
                if (body.skipped_rows > 0) {
                    showToast(body.skipped_rows + ' row(s) skipped (no seller or title)');
                }
            } catch (e) {
                showToast(e.message);
            }
        }

        function resetUpload() {
            state.datasetId = null;
            state.seller = null;
            document.getElementById('fileInput').value = '';
            showView('upload');
        }

        // ---- sellers ----

        function renderSellers(sellers) {
            document.getElementById('sellerCount').textContent = '(' + sellers.length + ')';
            document.getElementById('sellerItems').innerHTML = sellers.map(s =>
                '<div class="seller-item" data-seller="' + escapeHtml(s.seller) + '" onclick="selectSeller(this.dataset.seller)">' +
                    '<span>' + escapeHtml(s.seller) + '</span>' +
                    '<span class="count-badge">' + s.count + '</span>' +
                '</div>'
            ).join('');
        }

        async function selectSeller(seller) {
            state.seller = seller;
            state.page = 1;
            document.querySelectorAll('.seller-item').forEach(el => {
                el.classList.toggle('active', el.dataset.seller === seller);
            });
            await Promise.all([loadAnalysis(), loadListings()]);
        }

        // ---- analysis ----

        async function loadAnalysis() {
            const body = await api('/api/analysis?id=' + encodeURIComponent(state.datasetId) +
                '&seller=' + encodeURIComponent(state.seller));
            const s = body.basic_stats || {};
            document.getElementById('statTotal').textContent = (s.total_listings || 0).toLocaleString();
            document.getElementById('statAvg').textContent = money(s.avg_price);
            document.getElementById('statMin').textContent = money(s.min_price);
            document.getElementById('statMax').textContent = money(s.max_price);
            document.getElementById('statFeedback').textContent = s.feedback || 'N/A';
            updateCategoryChart(body.category_analysis || []);
            updatePriceChart(body.price_buckets || []);
            updateBucketTable(body.price_buckets || [], s.priced_listings || 0);
        }

        function updateCategoryChart(cats) {
            const ctx = document.getElementById('categoryChart');
            if (categoryChart) categoryChart.destroy();
            categoryChart = new Chart(ctx, {
                type: 'doughnut',
                data: {
                    labels: cats.map(c => c.label),
                    datasets: [{
                        data: cats.map(c => c.count),
                        backgroundColor: palette,
                        borderColor: '#131920',
                        borderWidth: 2
                    }]
                },
                options: {
                    responsive: true,
                    maintainAspectRatio: false,
                    plugins: { legend: { position: 'right', labels: { color: '#8b949e', font: { size: 12 } } } }
                }
            });
        }

        function updatePriceChart(buckets) {
            const ctx = document.getElementById('priceChart');
            if (priceChart) priceChart.destroy();
            priceChart = new Chart(ctx, {
                type: 'bar',
                data: {
                    labels: buckets.map(b => b.label),
                    datasets: [{
                        label: 'Listings',
                        data: buckets.map(b => b.count),
                        backgroundColor: '#3b82f6',
                        borderRadius: 4
                    }]
                },
                options: {
                    responsive: true,
                    maintainAspectRatio: false,
                    plugins: { legend: { display: false } },
                    scales: {
                        x: { ticks: { color: '#8b949e' }, grid: { color: '#2d3748' } },
                        y: { ticks: { color: '#8b949e', precision: 0 }, grid: { color: '#2d3748' } }
                    }
                }
            });
        }

        function updateBucketTable(buckets, priced) {
            document.getElementById('bucketRows').innerHTML = buckets.map(b => {
                const share = priced > 0 ? (100 * b.count / priced).toFixed(1) + '%' : '-';
                return '<tr><td>' + escapeHtml(b.label) + '</td><td>' + b.count + '</td><td>' + share + '</td></tr>';
            }).join('');
        }

        // ---- products table ----

        function debouncedReload() {
            clearTimeout(debounceTimer);
            debounceTimer = setTimeout(() => { state.page = 1; loadListings(); }, 300);
        }

        function sortBy(field) {
            if (state.sort === field) {
                state.dir = state.dir === 'asc' ? 'desc' : 'asc';
            } else {
                state.sort = field;
                state.dir = field === 'price' ? 'desc' : 'asc';
            }
            state.page = 1;
            loadListings();
        }

        function changePage(delta) {
            state.page += delta;
            if (state.page < 1) state.page = 1;
            loadListings();
        }

        async function loadListings() {
            const limit = document.getElementById('pageSize').value;
            const cat = document.getElementById('categoryFilter').value;
            let url = '/api/listings?id=' + encodeURIComponent(state.datasetId) +
                '&seller=' + encodeURIComponent(state.seller) +
                '&sort=' + state.sort + '&dir=' + state.dir +
                '&page=' + state.page + '&limit=' + limit;
            if (cat) url += '&category=' + encodeURIComponent(cat);

            let body;
            try {
                body = await api(url);
            } catch (e) {
                document.getElementById('productRows').innerHTML = '';
                document.getElementById('productsEmpty').style.display = 'block';
                document.getElementById('pageLabel').textContent = '';
                return;
            }

            const rows = body.listings || [];
            document.getElementById('productsEmpty').style.display = rows.length === 0 ? 'block' : 'none';
            document.getElementById('productRows').innerHTML = rows.map(l => {
                const link = l.url ? '<a href="' + escapeHtml(l.url) + '" target="_blank" rel="noopener">open</a>' : '-';
                return '<tr>' +
                    '<td>' + escapeHtml(l.title) + '</td>' +
                    '<td class="price">' + money(l.price) + '</td>' +
                    '<td>' + escapeHtml(l.category || '-') + '</td>' +
                    '<td>' + escapeHtml(l.condition || '-') + '</td>' +
                    '<td>' + escapeHtml(l.listed_at || '-') + '</td>' +
                    '<td>' + link + '</td>' +
                '</tr>';
            }).join('');

            document.getElementById('pageLabel').textContent =
                'Page ' + body.page + ' of ' + body.total_pages + ' · ' + body.total.toLocaleString() + ' listings';
            document.getElementById('prevPage').disabled = body.page <= 1;
            document.getElementById('nextPage').disabled = body.page >= body.total_pages;
        }

        // ---- exports ----

        function downloadExport(format) {
            window.location.href = '/api/export/' + format + '?id=' + encodeURIComponent(state.datasetId) +
                '&seller=' + encodeURIComponent(state.seller);
        }

        function downloadChart(kind) {
            window.location.href = '/api/export/chart.png?id=' + encodeURIComponent(state.datasetId) +
                '&seller=' + encodeURIComponent(state.seller) + '&kind=' + kind;
        }

        // ---- tabs / dnd ----

        function switchTab(btn) {
            document.querySelectorAll('.tab-btn').forEach(b => b.classList.remove('active'));
            document.querySelectorAll('.tab-pane').forEach(p => p.classList.remove('active'));
            btn.classList.add('active');
            document.getElementById('tab-' + btn.dataset.tab).classList.add('active');
        }

        const zone = document.getElementById('dropZone');
        zone.addEventListener('dragover', e => { e.preventDefault(); zone.classList.add('drag'); });
        zone.addEventListener('dragleave', () => zone.classList.remove('drag'));
        zone.addEventListener('drop', e => {
            e.preventDefault();
            zone.classList.remove('drag');
            if (e.dataTransfer.files.length > 0) uploadFile(e.dataTransfer.files[0]);
        });

        checkSession();
    </script>
</body>
</html>`
}
